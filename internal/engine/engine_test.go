package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smart-budget/internal/bank"
	"github.com/Veraticus/smart-budget/internal/classification"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
	"github.com/Veraticus/smart-budget/internal/storage"
	"github.com/Veraticus/smart-budget/internal/training"
)

var fixedNow = time.Date(2025, 1, 20, 9, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestEngine(t *testing.T, store storage.Store, source bank.Source, cfg Config) *Engine {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	if source == nil {
		source = bank.NewMockLink(0)
	}
	sim := training.NewSimulator(
		training.WithEpochDelay(0),
		training.WithRandom(func() float64 { return 0.5 }),
	)
	return New(store,
		classification.NewPipeline(classification.NewKeywordModel(0)),
		training.NewTrainer(sim),
		source,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(sequentialIDs()),
		WithConfig(cfg),
	)
}

func manualConfig() Config {
	return Config{AutoTrain: false}
}

func addEntries(t *testing.T, e *Engine, n int, description string) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, ok, err := e.AddTransaction(context.Background(), TransactionInput{
			Description: description,
			Amount:      "10",
			Type:        model.TypeExpense,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestAddTransactionCategoryChoice(t *testing.T) {
	tests := []struct {
		name         string
		category     string
		wantCategory string
		wantEdited   bool
	}{
		{"suggestion used when nothing picked", "", "Food", false},
		{"default category means use suggestion", "Other", "Food", false},
		{"pick matching suggestion", "Food", "Food", false},
		{"pick overriding suggestion", "Housing", "Housing", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil, nil, manualConfig())

			txn, ok, err := e.AddTransaction(context.Background(), TransactionInput{
				Description: "Grocery run",
				Amount:      "$1,045.20",
				Type:        model.TypeExpense,
				Category:    tt.category,
			})
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, tt.wantCategory, txn.Category)
			assert.Equal(t, tt.wantEdited, txn.IsEdited)
			assert.Equal(t, "id-1", txn.ID)
			assert.Equal(t, "1/20/2025", txn.Date)
			assert.InDelta(t, 1045.20, txn.Amount, 1e-9)
			assert.False(t, txn.IsImported)

			s := e.State()
			require.Len(t, s.Transactions, 1)
			assert.Equal(t, 1, s.Stats.TotalPredictions)
			assert.Equal(t, 1, s.Stats.RulePredictions)
		})
	}
}

func TestAddTransactionIgnoresIncompleteInput(t *testing.T) {
	e := newTestEngine(t, nil, nil, manualConfig())

	for _, in := range []TransactionInput{
		{Description: "", Amount: "10"},
		{Description: "Coffee", Amount: "  "},
	} {
		_, ok, err := e.AddTransaction(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Empty(t, e.State().Transactions)
}

func TestAddTransactionNegativeAndMalformedAmounts(t *testing.T) {
	e := newTestEngine(t, nil, nil, manualConfig())

	txn, _, err := e.AddTransaction(context.Background(), TransactionInput{Description: "Refund", Amount: "-12.50", Type: model.TypeIncome})
	require.NoError(t, err)
	assert.InDelta(t, 12.5, txn.Amount, 1e-9)
	assert.Equal(t, model.TypeIncome, txn.Type)

	txn, _, err = e.AddTransaction(context.Background(), TransactionInput{Description: "Mystery", Amount: "12abc"})
	require.NoError(t, err)
	assert.Zero(t, txn.Amount)
	assert.Equal(t, model.TypeExpense, txn.Type)

	txn, ok, err := e.AddTransaction(context.Background(), TransactionInput{Description: "Huge", Amount: "1e400"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Zero(t, txn.Amount)
	assert.Len(t, e.State().Transactions, 3)
}

func TestAddTransactionUnknownCategory(t *testing.T) {
	e := newTestEngine(t, nil, nil, manualConfig())

	_, _, err := e.AddTransaction(context.Background(), TransactionInput{
		Description: "Lunch",
		Amount:      "12",
		Category:    "Nonexistent",
	})
	require.ErrorIs(t, err, common.ErrUnknownCategory)
	assert.Empty(t, e.State().Transactions)
}

func TestAddTransactionPrefersCustomCategory(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil, manualConfig())

	_, ok, err := e.AddCustomCategory(ctx, "Pets")
	require.NoError(t, err)
	require.True(t, ok)

	txn, _, err := e.AddTransaction(ctx, TransactionInput{Description: "pets food and toys", Amount: "30"})
	require.NoError(t, err)
	assert.Equal(t, "Pets", txn.Category)
	assert.Zero(t, e.State().Stats.TotalPredictions)
}

func TestClassifyRecordsPrediction(t *testing.T) {
	e := newTestEngine(t, nil, nil, manualConfig())

	p, err := e.Classify(context.Background(), "Shell gas")
	require.NoError(t, err)
	assert.Equal(t, "Transportation", p.Category)
	assert.Equal(t, model.MethodRules, p.Method)
	assert.Equal(t, 1, e.State().Stats.TotalPredictions)
}

func TestEditTransactionCategory(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil, manualConfig())
	addEntries(t, e, 1, "Grocery run")

	require.NoError(t, e.EditTransactionCategory(ctx, "id-1", "Entertainment"))
	txn, ok := e.State().Transaction("id-1")
	require.True(t, ok)
	assert.Equal(t, "Entertainment", txn.Category)
	assert.True(t, txn.IsEdited)

	assert.ErrorIs(t, e.EditTransactionCategory(ctx, "missing", "Food"), common.ErrUnknownTransaction)
	assert.ErrorIs(t, e.EditTransactionCategory(ctx, "id-1", "Nope"), common.ErrUnknownCategory)
}

func TestBudgetOperations(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil, manualConfig())

	require.NoError(t, e.SetIncome(ctx, 5000))
	require.NoError(t, e.SetAllocation(ctx, "Housing", 1500))
	assert.ErrorIs(t, e.SetAllocation(ctx, "Nope", 10), common.ErrUnknownCategory)

	sum := e.Summary()
	assert.Equal(t, "5000", sum.Income.String())
	assert.Equal(t, "1500", sum.TotalAllocated.String())
	assert.Equal(t, "3500", sum.Unallocated.String())

	_, ok, err := e.AddCustomCategory(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGoals(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil, manualConfig())

	_, ok, err := e.AddGoal(ctx, "", 100)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = e.AddGoal(ctx, "Trip", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	g, ok, err := e.AddGoal(ctx, " Trip ", 1000)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Trip", g.Name)
	assert.Zero(t, g.Current)

	g, err = e.AdjustGoal(ctx, g.ID, 1200)
	require.NoError(t, err)
	assert.InDelta(t, 1200, g.Current, 1e-9)
	assert.True(t, g.IsComplete())

	g, err = e.AdjustGoal(ctx, g.ID, -5000)
	require.NoError(t, err)
	assert.Zero(t, g.Current)

	_, err = e.AdjustGoal(ctx, "missing", 10)
	assert.ErrorIs(t, err, common.ErrUnknownGoal)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	e := newTestEngine(t, store, nil, manualConfig())

	require.NoError(t, e.SetIncome(ctx, 4200))
	_, _, err := e.AddCustomCategory(ctx, "Pets")
	require.NoError(t, err)
	require.NoError(t, e.SetAllocation(ctx, "Pets", 80))
	_, _, err = e.AddGoal(ctx, "Emergency", 3000)
	require.NoError(t, err)
	addEntries(t, e, MinTrainingExamples, "Grocery run")
	_, err = e.Train(ctx, nil)
	require.NoError(t, err)

	want := e.State()

	reloaded := newTestEngine(t, store, nil, manualConfig())
	require.NoError(t, reloaded.Load(ctx))
	got := reloaded.State()

	assert.Equal(t, want.Income, got.Income)
	assert.Equal(t, want.Transactions, got.Transactions)
	assert.Equal(t, want.Goals, got.Goals)
	assert.Equal(t, want.Categories.Names(), got.Categories.Names())
	pets, ok := got.Categories.Get("Pets")
	require.True(t, ok)
	assert.InDelta(t, 80, pets.Allocated, 1e-9)
	assert.True(t, got.AIReady)
	require.NotNil(t, got.Model)
	assert.True(t, got.Model.Date.Equal(fixedNow))
	assert.Equal(t, want.Stats.TotalPredictions, got.Stats.TotalPredictions)
}

func TestLoadEmptyStoreKeepsDefaults(t *testing.T) {
	e := newTestEngine(t, nil, nil, manualConfig())
	require.NoError(t, e.Load(context.Background()))

	s := e.State()
	assert.Equal(t, 8, s.Categories.Len())
	assert.False(t, s.AIReady)
	assert.Nil(t, s.Model)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	e := newTestEngine(t, store, nil, manualConfig())
	require.NoError(t, e.SetIncome(ctx, 100))

	require.NoError(t, store.Close())
	err := e.SetIncome(ctx, 999)
	require.ErrorIs(t, err, common.ErrStoreClosed)
	assert.Equal(t, 100.0, e.State().Income)
}

// rejectingStore refuses any write that touches one key.
type rejectingStore struct {
	*storage.MemoryStore
	key string
}

var errRejected = errors.New("write rejected")

func (s *rejectingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == s.key {
		return errRejected
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *rejectingStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if _, ok := entries[s.key]; ok {
		return errRejected
	}
	return s.MemoryStore.SetMany(ctx, entries)
}

func TestFailedSaveWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := &rejectingStore{MemoryStore: storage.NewMemoryStore(), key: "budget"}
	e := newTestEngine(t, store, nil, manualConfig())

	_, _, err := e.AddTransaction(ctx, TransactionInput{Description: "Grocery run", Amount: "10"})
	require.ErrorIs(t, err, errRejected)
	assert.Empty(t, e.State().Transactions)

	reloaded := newTestEngine(t, store, nil, manualConfig())
	require.NoError(t, reloaded.Load(ctx))
	assert.Empty(t, reloaded.State().Transactions)
}

func TestTrainRequiresCategorizedTransactions(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil, manualConfig())
	addEntries(t, e, MinTrainingExamples-1, "Grocery run")
	addEntries(t, e, 5, "Mystery charge")

	_, err := e.Train(ctx, nil)
	require.ErrorIs(t, err, common.ErrInsufficientTrainingData)
	assert.False(t, e.State().AIReady)
}

func TestTrain(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, nil, manualConfig())
	addEntries(t, e, MinTrainingExamples, "Grocery run")
	addEntries(t, e, 2, "Mystery charge")

	var events []model.TrainingProgress
	meta, err := e.Train(ctx, func(p model.TrainingProgress) {
		events = append(events, p)
	})
	require.NoError(t, err)

	require.Len(t, events, training.Epochs)
	assert.True(t, events[len(events)-1].IsComplete)
	assert.InDelta(t, 0.90, meta.Accuracy, 1e-9)
	assert.Equal(t, MinTrainingExamples+2, meta.TrainedOn)
	assert.True(t, meta.Date.Equal(fixedNow))

	s := e.State()
	assert.True(t, s.AIReady)
	assert.InDelta(t, 0.90, s.Stats.ModelAccuracy, 1e-9)
	require.NotNil(t, s.Stats.TrainingDate)

	p, err := e.Classify(ctx, "Starbucks latte")
	require.NoError(t, err)
	assert.Equal(t, model.MethodAI, p.Method)
}

func TestTrainCanceled(t *testing.T) {
	e := newTestEngine(t, nil, nil, manualConfig())
	addEntries(t, e, MinTrainingExamples, "Grocery run")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Train(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, e.State().AIReady)
	assert.Nil(t, e.State().Model)
}

func TestAutoTrainDue(t *testing.T) {
	tests := []struct {
		name        string
		categorized int
		other       int
		want        bool
	}{
		{"empty", 0, 0, false},
		{"enough categorized but too few overall", 10, 4, false},
		{"enough overall but too few categorized", 9, 6, false},
		{"due", 10, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, nil, nil, manualConfig())
			addEntries(t, e, tt.categorized, "Grocery run")
			addEntries(t, e, tt.other, "Mystery charge")
			assert.Equal(t, tt.want, e.AutoTrainDue())
		})
	}
}

func TestMaybeAutoTrain(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		e := newTestEngine(t, nil, nil, manualConfig())
		addEntries(t, e, 15, "Grocery run")

		trained, err := e.MaybeAutoTrain(ctx, nil)
		require.NoError(t, err)
		assert.False(t, trained)
		assert.False(t, e.State().AIReady)
	})

	t.Run("not due", func(t *testing.T) {
		e := newTestEngine(t, nil, nil, Config{AutoTrain: true})
		addEntries(t, e, 3, "Grocery run")

		trained, err := e.MaybeAutoTrain(ctx, nil)
		require.NoError(t, err)
		assert.False(t, trained)
	})

	t.Run("due", func(t *testing.T) {
		e := newTestEngine(t, nil, nil, Config{AutoTrain: true})
		addEntries(t, e, 15, "Grocery run")

		trained, err := e.MaybeAutoTrain(ctx, nil)
		require.NoError(t, err)
		assert.True(t, trained)
		assert.True(t, e.State().AIReady)

		trained, err = e.MaybeAutoTrain(ctx, nil)
		require.NoError(t, err)
		assert.False(t, trained)
	})

	t.Run("canceled during delay", func(t *testing.T) {
		e := newTestEngine(t, nil, nil, Config{AutoTrain: true, AutoTrainDelay: time.Hour})
		addEntries(t, e, 15, "Grocery run")

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		trained, err := e.MaybeAutoTrain(cctx, nil)
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, trained)
		assert.False(t, e.State().AIReady)
	})
}

func TestSyncBankRequiresConnection(t *testing.T) {
	e := newTestEngine(t, nil, nil, manualConfig())

	_, err := e.SyncBank(context.Background())
	assert.ErrorIs(t, err, common.ErrNotConnected)
}

func TestConnectAndSyncBank(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, bank.NewMockLink(0), manualConfig())

	accounts, err := e.ConnectBank(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
	assert.Len(t, e.State().Accounts, 3)

	added, err := e.SyncBank(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, added)

	s := e.State()
	require.Len(t, s.Transactions, 15)
	require.NotNil(t, s.LastSync)
	assert.True(t, s.LastSync.Equal(fixedNow))
	assert.Equal(t, 15, s.Stats.TotalPredictions)

	first := s.Transactions[0]
	assert.Equal(t, "t1", first.ID)
	assert.True(t, first.IsImported)
	assert.Equal(t, "1/20/2025", first.Date)

	added, err = e.SyncBank(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Len(t, e.State().Transactions, 15)
	assert.Equal(t, 15, e.State().Stats.TotalPredictions)
}

func TestConnectBankRecordsSyncTime(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, bank.NewMockLink(0), manualConfig())

	_, err := e.ConnectBank(ctx)
	require.NoError(t, err)

	s := e.State()
	require.NotNil(t, s.LastSync)
	assert.True(t, s.LastSync.Equal(fixedNow))
	assert.Empty(t, s.Transactions)
}

func TestSyncBankCategorizesFixtures(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, bank.NewMockLink(0), Config{AutoTrain: true})

	_, err := e.ConnectBank(ctx)
	require.NoError(t, err)
	_, err = e.SyncBank(ctx)
	require.NoError(t, err)

	want := map[string]string{
		"t1":  "Food",
		"t2":  "Transportation",
		"t3":  "Housing",
		"t4":  "Other",
		"t5":  "Entertainment",
		"t6":  "Utilities",
		"t7":  "Healthcare",
		"t8":  "Food",
		"t9":  "Entertainment",
		"t10": "Food",
		"t11": "Transportation",
		"t12": "Entertainment",
		"t13": "Savings",
		"t14": "Utilities",
		"t15": "Food",
	}
	s := e.State()
	for _, txn := range s.Transactions {
		assert.Equal(t, want[txn.ID], txn.Category, txn.Description)
	}
	assert.Equal(t, 14, s.CategorizedCount())
	assert.True(t, e.AutoTrainDue())

	trained, err := e.MaybeAutoTrain(ctx, nil)
	require.NoError(t, err)
	assert.True(t, trained)
	assert.True(t, e.State().AIReady)
}

func TestSyncBankPrefersCustomCategory(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, nil, bank.NewMockLink(0), manualConfig())

	_, _, err := e.AddCustomCategory(ctx, "Netflix")
	require.NoError(t, err)
	_, err = e.ConnectBank(ctx)
	require.NoError(t, err)
	_, err = e.SyncBank(ctx)
	require.NoError(t, err)

	txn, ok := e.State().Transaction("t5")
	require.True(t, ok)
	assert.Equal(t, "Netflix", txn.Category)
	assert.Equal(t, 14, e.State().Stats.TotalPredictions)
}

func TestBankSourceErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	src := &bank.FuncSource{
		AccountsFn: func(context.Context) ([]model.Account, error) {
			return nil, boom
		},
	}
	e := newTestEngine(t, nil, src, manualConfig())
	_, err := e.ConnectBank(ctx)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, e.State().Accounts)

	src.AccountsFn = func(context.Context) ([]model.Account, error) {
		return []model.Account{{ID: "a1", Name: "Checking"}}, nil
	}
	src.TransactionsFn = func(context.Context) ([]model.BankTransaction, error) {
		return nil, boom
	}
	_, err = e.ConnectBank(ctx)
	require.NoError(t, err)

	_, err = e.SyncBank(ctx)
	require.ErrorIs(t, err, boom)
	assert.Empty(t, e.State().Transactions)
	assert.Equal(t, 2, src.AccountsCalls)
	assert.Equal(t, 1, src.TransactionsCalls)
}
