package state

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/smart-budget/internal/categories"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

// Keys the state is persisted under.
const (
	KeyTransactions = "transactions"
	KeyModel        = "aiModel"
	KeyBudget       = "budget"
)

// budgetBlob is the part of the state that is neither transactions nor
// model metadata.
type budgetBlob struct {
	LastSync   *time.Time            `json:"lastSync,omitempty"`
	Categories categories.Store      `json:"categories"`
	Goals      []model.Goal          `json:"goals"`
	Accounts   []model.Account       `json:"accounts"`
	Stats      model.PredictionStats `json:"stats"`
	Income     float64               `json:"income"`
}

// EncodeTransactions serializes the transaction list as a JSON array.
func EncodeTransactions(txns []model.Transaction) ([]byte, error) {
	if txns == nil {
		txns = []model.Transaction{}
	}
	data, err := json.Marshal(txns)
	if err != nil {
		return nil, fmt.Errorf("encode transactions: %w", err)
	}
	return data, nil
}

// DecodeTransactions reads a list written by EncodeTransactions.
func DecodeTransactions(data []byte) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := json.Unmarshal(data, &txns); err != nil {
		return nil, fmt.Errorf("decode transactions: %w: %w", common.ErrStoreCorrupted, err)
	}
	return txns, nil
}

// EncodeModel serializes the model metadata record.
func EncodeModel(meta model.ModelMetadata) ([]byte, error) {
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	return data, nil
}

// DecodeModel reads a record written by EncodeModel.
func DecodeModel(data []byte) (model.ModelMetadata, error) {
	var meta model.ModelMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return model.ModelMetadata{}, fmt.Errorf("decode model: %w: %w", common.ErrStoreCorrupted, err)
	}
	return meta, nil
}

// EncodeBudget serializes income, categories, goals, accounts and stats.
func EncodeBudget(s State) ([]byte, error) {
	blob := budgetBlob{
		LastSync:   s.LastSync,
		Categories: s.Categories,
		Goals:      s.Goals,
		Accounts:   s.Accounts,
		Stats:      s.Stats,
		Income:     s.Income,
	}
	if blob.Goals == nil {
		blob.Goals = []model.Goal{}
	}
	if blob.Accounts == nil {
		blob.Accounts = []model.Account{}
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("encode budget: %w", err)
	}
	return data, nil
}

// DecodeBudget applies a blob written by EncodeBudget on top of s.
func DecodeBudget(s State, data []byte) (State, error) {
	blob := budgetBlob{Categories: categories.Defaults()}
	if err := json.Unmarshal(data, &blob); err != nil {
		return s, fmt.Errorf("decode budget: %w: %w", common.ErrStoreCorrupted, err)
	}
	s.LastSync = blob.LastSync
	s.Categories = blob.Categories
	s.Goals = blob.Goals
	s.Accounts = blob.Accounts
	s.Stats = blob.Stats
	s.Income = blob.Income
	return s, nil
}

// Restore rebuilds a state from persisted blobs. Missing keys keep their
// defaults. Model metadata, when present, marks the model ready.
func Restore(blobs map[string][]byte) (State, error) {
	s := New()

	if data, ok := blobs[KeyBudget]; ok {
		var err error
		if s, err = DecodeBudget(s, data); err != nil {
			return New(), err
		}
	}

	if data, ok := blobs[KeyTransactions]; ok {
		txns, err := DecodeTransactions(data)
		if err != nil {
			return New(), err
		}
		s.Transactions = txns
	}

	if data, ok := blobs[KeyModel]; ok {
		meta, err := DecodeModel(data)
		if err != nil {
			return New(), err
		}
		s.Model = &meta
		s.AIReady = true
	}

	return s, nil
}
