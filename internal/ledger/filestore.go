package ledger

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"concilia/internal/logging"
	"concilia/internal/models"
	"concilia/internal/parsererror"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileStore is a YAML-file-backed Store used by the CLI and tests. It
// loads the whole ledger into memory and rewrites the file after every
// mutation. Amounts travel through the file as strings so the YAML stays
// human-editable.
type FileStore struct {
	path   string
	logger logging.Logger

	mu           sync.Mutex
	transactions []models.LedgerTransaction
	accounts     []models.Account
	loaded       bool
}

// fileTransaction is the on-disk shape of a ledger transaction.
type fileTransaction struct {
	models.LedgerTransaction `yaml:",inline"`
	Amount                   string `yaml:"amount"`
}

// fileLedger is the top-level structure of the ledger YAML file.
type fileLedger struct {
	Accounts     []models.Account  `yaml:"accounts"`
	Transactions []fileTransaction `yaml:"transactions"`
}

// NewFileStore creates a FileStore for the given path. The file is read
// lazily on first use; a missing file is an empty ledger.
func NewFileStore(path string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("error reading ledger file: %w", err)
	}

	var file fileLedger
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("error parsing ledger file: %w", err)
	}

	s.accounts = file.Accounts
	s.transactions = make([]models.LedgerTransaction, 0, len(file.Transactions))
	for _, ft := range file.Transactions {
		tx := ft.LedgerTransaction
		tx.Amount, err = decimal.NewFromString(ft.Amount)
		if err != nil {
			s.logger.WithError(err).Warn("Skipping ledger transaction with invalid amount",
				logging.Field{Key: "id", Value: ft.ID})
			continue
		}
		s.transactions = append(s.transactions, tx)
	}
	s.loaded = true

	s.logger.Debug("Loaded ledger file",
		logging.Field{Key: "file", Value: s.path},
		logging.Field{Key: "transactions", Value: len(s.transactions)},
		logging.Field{Key: "accounts", Value: len(s.accounts)})
	return nil
}

func (s *FileStore) save() error {
	file := fileLedger{Accounts: s.accounts}
	for _, tx := range s.transactions {
		file.Transactions = append(file.Transactions, fileTransaction{
			LedgerTransaction: tx,
			Amount:            tx.Amount.StringFixed(2),
		})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("error encoding ledger file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("error writing ledger file: %w", err)
	}
	return nil
}

// ListTransactions returns every ledger transaction.
func (s *FileStore) ListTransactions(ctx context.Context) ([]models.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]models.LedgerTransaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

// UpdateTransaction applies a partial update and persists the file.
func (s *FileStore) UpdateTransaction(ctx context.Context, id int64, update TransactionUpdate) (models.LedgerTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return models.LedgerTransaction{}, err
	}

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		if update.Notes != nil {
			s.transactions[i].Notes = *update.Notes
		}
		if update.Category != nil {
			s.transactions[i].Category = *update.Category
		}
		if err := s.save(); err != nil {
			return models.LedgerTransaction{}, err
		}
		return s.transactions[i], nil
	}

	return models.LedgerTransaction{}, &parsererror.NotFoundError{Entity: "transaction", ID: id}
}

// CreateTransactionsBatch persists candidates as Paid ledger transactions,
// skipping duplicates of already-stored transactions. The duplicate key is
// date, direction, amount and description.
func (s *FileStore) CreateTransactionsBatch(ctx context.Context, candidates []models.TransactionCandidate) (BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result BatchResult
	if err := s.load(); err != nil {
		return result, err
	}

	existing := make(map[string]bool, len(s.transactions))
	for _, tx := range s.transactions {
		existing[duplicateKey(tx.Date, tx.Direction, tx.Amount, tx.Description)] = true
	}

	nextID := s.nextID()
	for i := range candidates {
		c := &candidates[i]
		if err := c.Validate(); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		key := duplicateKey(c.Date, c.Direction, c.Amount, c.Description)
		if existing[key] {
			result.SkippedDuplicates++
			continue
		}
		existing[key] = true

		s.transactions = append(s.transactions, models.LedgerTransaction{
			ID:            nextID,
			Description:   c.Description,
			Category:      c.Category,
			Direction:     c.Direction,
			Amount:        c.Amount,
			Status:        models.StatusPaid,
			PaymentMethod: c.MethodLabel,
			Date:          c.Date,
			Time:          c.Time,
			Origin:        c.CounterpartyName,
			Notes:         c.AuditNote,
		})
		nextID++
		result.Imported++
	}

	if result.Imported > 0 {
		if err := s.save(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// ListAccounts returns the known bank accounts.
func (s *FileStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]models.Account, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// Seed replaces the in-memory ledger content and persists it. Intended
// for tests and for bootstrapping a new ledger file.
func (s *FileStore) Seed(transactions []models.LedgerTransaction, accounts []models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = transactions
	s.accounts = accounts
	s.loaded = true
	return s.save()
}

func (s *FileStore) nextID() int64 {
	ids := make([]int64, 0, len(s.transactions))
	for _, tx := range s.transactions {
		ids = append(ids, tx.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) == 0 {
		return 1
	}
	return ids[len(ids)-1] + 1
}

func duplicateKey(date string, direction models.Direction, amount decimal.Decimal, description string) string {
	return strings.Join([]string{
		date,
		direction.String(),
		amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(description)),
	}, "|")
}
