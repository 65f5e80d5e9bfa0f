package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidInput, "invalid input")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidInput, err.Code)
	suite.Equal("invalid input", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeUserNotFound, "no user found with account number %s", "123456")
	suite.NotNil(err)
	suite.Equal(ErrCodeUserNotFound, err.Code)
	suite.Equal("no user found with account number 123456", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal("failed to execute query", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeInstrumentNotFound, cause, "no instrument found with ticker %s", "BMA")
	suite.NotNil(err)
	suite.Equal(ErrCodeInstrumentNotFound, err.Code)
	suite.Equal("no instrument found with ticker BMA", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidInput, "invalid input")
	suite.Equal("[103] invalid input", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)
	suite.Equal("[601] failed to execute query: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidInput, "invalid input")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInsufficientFunds, "insufficient funds")
	suite.Equal(ErrCodeInsufficientFunds, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	inner := New(ErrCodeOrderNotFound, "order not found")
	outer := fmt.Errorf("handling request: %w", inner)
	suite.Equal(ErrCodeOrderNotFound, GetCode(outer))
}

func (suite *ErrorTestSuite) TestGetCodeUnknown() {
	err := errors.New("plain error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidCancelState, "cannot cancel")
	suite.True(HasCode(err, ErrCodeInvalidCancelState))
	suite.False(HasCode(err, ErrCodeInsufficientStock))
}
