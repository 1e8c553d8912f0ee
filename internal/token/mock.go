package token

import (
	"context"
	"sync"
)

// MockLedger implements Interface over in-memory token books. It stands
// in for the host ledger's asset contracts in tests and demo
// deployments, the same way the mock storage backend stands in for a
// cloud bucket.
type MockLedger struct {
	mu       sync.Mutex
	operator string // account the escrow service acts as
	tokens   map[string]*mockToken
}

type mockToken struct {
	admin        string
	balances     map[string]int64
	allowances   map[string]map[string]int64 // holder -> spender -> amount
	deauthorized map[string]bool             // holders default to authorized
}

func NewMockLedger(operator string) *MockLedger {
	return &MockLedger{
		operator: operator,
		tokens:   map[string]*mockToken{},
	}
}

// Register creates a token book under the asset identifier with the
// given administrator.
func (m *MockLedger) Register(asset, admin string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[asset] = &mockToken{
		admin:        admin,
		balances:     map[string]int64{},
		allowances:   map[string]map[string]int64{},
		deauthorized: map[string]bool{},
	}
}

// Mint credits freshly issued units to a holder. Test setup only.
func (m *MockLedger) Mint(asset, holder string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tok, ok := m.tokens[asset]; ok {
		tok.balances[holder] += amount
	}
}

// Allowance reports the remaining approved amount. Test setup only.
func (m *MockLedger) Allowance(asset, holder, spender string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tok, ok := m.tokens[asset]; ok {
		return tok.allowances[holder][spender]
	}
	return 0
}

func (m *MockLedger) token(asset string) (*mockToken, error) {
	tok, ok := m.tokens[asset]
	if !ok {
		return nil, ErrUnknownAsset
	}
	return tok, nil
}

func (m *MockLedger) Balance(ctx context.Context, asset, holder string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, err := m.token(asset)
	if err != nil {
		return 0, err
	}
	return tok.balances[holder], nil
}

func (t *mockToken) move(from, to string, amount int64) error {
	if t.deauthorized[from] || t.deauthorized[to] {
		return ErrHolderDeauthorized
	}
	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (m *MockLedger) Transfer(ctx context.Context, asset, from, to string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, err := m.token(asset)
	if err != nil {
		return err
	}
	return tok.move(from, to, amount)
}

func (m *MockLedger) TransferFrom(ctx context.Context, asset, spender, from, to string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, err := m.token(asset)
	if err != nil {
		return err
	}
	if tok.allowances[from][spender] < amount {
		return ErrInsufficientAllowance
	}
	if err := tok.move(from, to, amount); err != nil {
		return err
	}
	tok.allowances[from][spender] -= amount
	return nil
}

func (m *MockLedger) IncreaseAllowance(ctx context.Context, asset, from, spender string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, err := m.token(asset)
	if err != nil {
		return err
	}
	if tok.allowances[from] == nil {
		tok.allowances[from] = map[string]int64{}
	}
	tok.allowances[from][spender] += amount
	return nil
}

func (m *MockLedger) SetAdmin(ctx context.Context, asset, newAdmin string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, err := m.token(asset)
	if err != nil {
		return err
	}
	if tok.admin != m.operator {
		return ErrNotAdmin
	}
	tok.admin = newAdmin
	return nil
}

func (m *MockLedger) SetAuthorized(ctx context.Context, asset, holder string, authorized bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, err := m.token(asset)
	if err != nil {
		return err
	}
	if tok.admin != m.operator {
		return ErrNotAdmin
	}
	tok.deauthorized[holder] = !authorized
	return nil
}

func (m *MockLedger) Authorized(ctx context.Context, asset, holder string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, err := m.token(asset)
	if err != nil {
		return false, err
	}
	return !tok.deauthorized[holder], nil
}
