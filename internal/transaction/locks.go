package transaction

import "sync"

// accountLocks serializes order-mutating operations per account. Two requests
// for the same account never interleave between the balance read and the
// ledger write; requests for different accounts proceed in parallel.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *accountLocks) forAccount(accountNumber string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, found := l.locks[accountNumber]
	if !found {
		lock = &sync.Mutex{}
		l.locks[accountNumber] = lock
	}

	return lock
}
