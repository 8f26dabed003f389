package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"

	"slots_backend/internal/model"
	"slots_backend/internal/repository/stats_repo"
)

// fakeTxManager исполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeSessionRepo хранит сессии в памяти
type fakeSessionRepo struct {
	mtx      sync.Mutex
	sessions map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *fakeSessionRepo) CreateSession(_ context.Context, session *model.Session) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetSession(_ context.Context, id string) (*model.Session, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

func (r *fakeSessionRepo) GetSessionForUpdate(ctx context.Context, id string) (*model.Session, error) {
	return r.GetSession(ctx, id)
}

func (r *fakeSessionRepo) UpdateCredits(_ context.Context, id string, credits int) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return model.ErrSessionNotFound
	}
	session.Credits = credits
	return nil
}

func (r *fakeSessionRepo) CashOut(_ context.Context, id string, accountCredits int) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return model.ErrSessionNotFound
	}
	session.Credits = 0
	session.AccountCredits = accountCredits
	session.IsActive = false
	return nil
}

// fakeRollRepo хранит журнал в памяти
type fakeRollRepo struct {
	mtx   sync.Mutex
	rolls []model.Roll
}

func (r *fakeRollRepo) CreateRoll(_ context.Context, roll *model.Roll) (int64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	cp := *roll
	cp.ID = int64(len(r.rolls) + 1)
	r.rolls = append(r.rolls, cp)
	return cp.ID, nil
}

func (r *fakeRollRepo) GetRollsBySession(_ context.Context, sessionID string) ([]model.Roll, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var out []model.Roll
	for i := len(r.rolls) - 1; i >= 0; i-- {
		if r.rolls[i].SessionID == sessionID {
			out = append(out, r.rolls[i])
		}
	}
	return out, nil
}

type testEnv struct {
	serv        *serv
	sessionRepo *fakeSessionRepo
	rollRepo    *fakeRollRepo
}

func newTestEnv(rnd randSource) *testEnv {
	sessionRepo := newFakeSessionRepo()
	rollRepo := &fakeRollRepo{}
	return &testEnv{
		serv: &serv{
			cfg:         testGameCfg{},
			sessionRepo: sessionRepo,
			rollRepo:    rollRepo,
			statsRepo:   stats_repo.NewStatsRepository(),
			txManager:   fakeTxManager{},
			rnd:         rnd,
		},
		sessionRepo: sessionRepo,
		rollRepo:    rollRepo,
	}
}

func (e *testEnv) addSession(id string, credits int, active bool) {
	e.sessionRepo.sessions[id] = &model.Session{
		ID:        id,
		Credits:   credits,
		IsActive:  active,
		CreatedAt: time.Now(),
	}
}

func TestRollLosingDraw(t *testing.T) {
	// cherry, lemon, orange - проигрыш
	env := newTestEnv(&scriptedRand{intn: []int{0, 1, 2}})
	env.addSession("s1", 10, true)

	res, err := env.serv.Roll(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.IsWinning {
		t.Error("mixed draw must not win")
	}
	if res.CreditsWon != 0 {
		t.Errorf("credits won = %d, want 0", res.CreditsWon)
	}
	if res.TotalCredits != 9 {
		t.Errorf("total credits = %d, want 9", res.TotalCredits)
	}
	if res.WasRerolled {
		t.Error("losing draw must not be marked rerolled")
	}

	if len(env.rollRepo.rolls) != 1 {
		t.Fatalf("expected 1 roll record, got %d", len(env.rollRepo.rolls))
	}
	roll := env.rollRepo.rolls[0]
	if roll.CreditsBefore != 10 || roll.CreditsAfter != 9 {
		t.Errorf("roll record credits %d -> %d, want 10 -> 9", roll.CreditsBefore, roll.CreditsAfter)
	}
}

func TestRollWinningDrawPaysOut(t *testing.T) {
	// Тройной watermelon, future = 9 + 40 = 49, бросок 0.9 >= 0.3 - без подкрутки
	env := newTestEnv(&scriptedRand{intn: []int{3, 3, 3}, floats: []float64{0.9}})
	env.addSession("s1", 10, true)

	res, err := env.serv.Roll(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.IsWinning {
		t.Fatal("triple watermelon must win")
	}
	if res.CreditsWon != 40 {
		t.Errorf("credits won = %d, want 40", res.CreditsWon)
	}
	if res.TotalCredits != 49 {
		t.Errorf("total credits = %d, want 49", res.TotalCredits)
	}
	for _, letter := range res.SymbolsDisplay {
		if letter != "W" {
			t.Errorf("display letters = %v, want all W", res.SymbolsDisplay)
			break
		}
	}

	session, _ := env.sessionRepo.GetSession(context.Background(), "s1")
	if session.Credits != 49 {
		t.Errorf("stored credits = %d, want 49", session.Credits)
	}
}

func TestRollSuppressedWin(t *testing.T) {
	// Тройной watermelon, future 49, бросок 0.1 < 0.3 - подкрутка.
	// Перерисовка: cherry, cherry, cherry снова выигрыш, последний
	// символ заменяется другим
	env := newTestEnv(&scriptedRand{
		intn:   []int{3, 3, 3, 0, 0, 0, 0},
		floats: []float64{0.1},
	})
	env.addSession("s1", 10, true)

	res, err := env.serv.Roll(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.WasRerolled {
		t.Fatal("suppressed win must be marked rerolled")
	}
	if res.IsWinning {
		t.Error("suppressed roll must not be winning")
	}
	if res.CreditsWon != 0 {
		t.Errorf("credits won = %d, want 0", res.CreditsWon)
	}
	if res.TotalCredits != 9 {
		t.Errorf("total credits = %d, want 9 (bet lost, no payout)", res.TotalCredits)
	}
	if isWinning(res.Symbols) {
		t.Errorf("effective symbols %v must not form a win", res.Symbols)
	}

	roll := env.rollRepo.rolls[0]
	if !roll.WasRerolled || roll.WasWinning || roll.CreditsWon != 0 {
		t.Errorf("roll record %+v, want rerolled non-winning with zero payout", roll)
	}
}

func TestRollInsufficientCredits(t *testing.T) {
	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(1))})
	env.addSession("s1", 0, true)

	_, err := env.serv.Roll(context.Background(), "s1")
	if !errors.Is(err, model.ErrInsufficientCredits) {
		t.Fatalf("error = %v, want ErrInsufficientCredits", err)
	}

	session, _ := env.sessionRepo.GetSession(context.Background(), "s1")
	if session.Credits != 0 {
		t.Errorf("credits = %d, want 0 (failed roll must not mutate state)", session.Credits)
	}
	if len(env.rollRepo.rolls) != 0 {
		t.Errorf("expected no roll records, got %d", len(env.rollRepo.rolls))
	}
}

func TestRollClosedSession(t *testing.T) {
	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(1))})
	env.addSession("s1", 10, false)

	_, err := env.serv.Roll(context.Background(), "s1")
	if !errors.Is(err, model.ErrSessionClosed) {
		t.Fatalf("error = %v, want ErrSessionClosed", err)
	}
}

func TestRollUnknownSession(t *testing.T) {
	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(1))})

	_, err := env.serv.Roll(context.Background(), "missing")
	if !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestBalanceConservation(t *testing.T) {
	const rolls = 2000
	const start = 100000

	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(99))})
	env.addSession("s1", start, true)

	for i := 0; i < rolls; i++ {
		if _, err := env.serv.Roll(context.Background(), "s1"); err != nil {
			t.Fatalf("roll %d failed: %v", i, err)
		}
	}

	var payouts int
	for _, roll := range env.rollRepo.rolls {
		payouts += roll.CreditsWon
		// Подкрученный ролл никогда не выигрывает и не платит
		if roll.WasRerolled && (roll.WasWinning || roll.CreditsWon != 0) {
			t.Fatalf("rerolled roll with payout: %+v", roll)
		}
		if delta := roll.CreditsAfter - roll.CreditsBefore; delta != roll.CreditsWon-1 {
			t.Fatalf("roll delta %d does not match payout %d minus cost", delta, roll.CreditsWon)
		}
	}

	session, _ := env.sessionRepo.GetSession(context.Background(), "s1")
	want := start - rolls + payouts
	if session.Credits != want {
		t.Errorf("credits = %d, want %d (start - N*cost + payouts)", session.Credits, want)
	}

	state := env.serv.Stats()
	if state.TotalRolls != rolls {
		t.Errorf("stats rolls = %d, want %d", state.TotalRolls, rolls)
	}
	if state.TotalPayout != int64(payouts) {
		t.Errorf("stats payout = %d, want %d", state.TotalPayout, payouts)
	}
}

func TestConcurrentRolls(t *testing.T) {
	// Источник по умолчанию делится между всеми запросами, поэтому
	// параллельные роллы должны быть безопасны (запускать с -race)
	const workers = 4
	const rollsPerWorker = 500
	const start = 100000

	env := newTestEnv(defaultRand{})
	for w := 0; w < workers; w++ {
		env.addSession(fmt.Sprintf("s%d", w), start, true)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < rollsPerWorker; i++ {
				if _, err := env.serv.Roll(context.Background(), id); err != nil {
					errCh <- err
					return
				}
			}
		}(fmt.Sprintf("s%d", w))
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent roll failed: %v", err)
	}

	// Баланс каждой сессии сходится с её журналом
	for w := 0; w < workers; w++ {
		id := fmt.Sprintf("s%d", w)

		rolls, err := env.rollRepo.GetRollsBySession(context.Background(), id)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(rolls) != rollsPerWorker {
			t.Fatalf("session %s has %d rolls, want %d", id, len(rolls), rollsPerWorker)
		}

		var payouts int
		for _, roll := range rolls {
			payouts += roll.CreditsWon
		}

		session, _ := env.sessionRepo.GetSession(context.Background(), id)
		want := start - rollsPerWorker + payouts
		if session.Credits != want {
			t.Errorf("session %s credits = %d, want %d", id, session.Credits, want)
		}
	}
}

func TestRollSuppressionRateInMidBand(t *testing.T) {
	// Сценарий из середины полосы: баланс 10, тройной watermelon,
	// future = 9 + 40 = 49. Ожидаем подкрутку примерно в 30% случаев
	const trials = 10000

	rnd := rand.New(rand.NewSource(5))

	suppressed := 0
	for i := 0; i < trials; i++ {
		env := newTestEnv(&scriptedRand{intn: []int{3, 3, 3}, rnd: rnd})
		env.addSession("s1", 10, true)

		res, err := env.serv.Roll(context.Background(), "s1")
		if err != nil {
			t.Fatalf("trial %d failed: %v", i, err)
		}

		if res.WasRerolled {
			suppressed++
			if res.TotalCredits != 9 {
				t.Fatalf("suppressed trial balance = %d, want 9", res.TotalCredits)
			}
		} else if res.TotalCredits != 49 {
			t.Fatalf("paid trial balance = %d, want 49", res.TotalCredits)
		}
	}

	if suppressed < 2700 || suppressed > 3300 {
		t.Errorf("suppressed %d of %d, want within [2700, 3300]", suppressed, trials)
	}
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(1))})

	session, err := env.serv.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.Credits != 10 {
		t.Errorf("starting credits = %d, want 10", session.Credits)
	}
	if session.AccountCredits != 0 {
		t.Errorf("account credits = %d, want 0", session.AccountCredits)
	}
	if !session.IsActive {
		t.Error("new session must be active")
	}
	if session.ID == "" {
		t.Error("session id must not be empty")
	}

	stored, err := env.sessionRepo.GetSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("created session not stored: %v", err)
	}
	if stored.Credits != session.Credits {
		t.Errorf("stored credits = %d, want %d", stored.Credits, session.Credits)
	}
}

func TestCashOut(t *testing.T) {
	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(1))})
	env.addSession("s1", 25, true)

	res, err := env.serv.CashOut(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.CashedOut != 25 {
		t.Errorf("cashed out = %d, want 25", res.CashedOut)
	}
	if res.TotalAccountCredits != 25 {
		t.Errorf("total account credits = %d, want 25", res.TotalAccountCredits)
	}

	session, _ := env.sessionRepo.GetSession(context.Background(), "s1")
	if session.Credits != 0 {
		t.Errorf("credits after cash out = %d, want 0", session.Credits)
	}
	if session.AccountCredits != 25 {
		t.Errorf("account credits = %d, want 25", session.AccountCredits)
	}
	if session.IsActive {
		t.Error("session must be closed after cash out")
	}
}

func TestCashOutUnknownSession(t *testing.T) {
	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(1))})

	_, err := env.serv.CashOut(context.Background(), "missing")
	if !errors.Is(err, model.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestHistory(t *testing.T) {
	env := newTestEnv(&scriptedRand{rnd: rand.New(rand.NewSource(1))})
	env.addSession("s1", 10, true)

	for i := 0; i < 3; i++ {
		if _, err := env.serv.Roll(context.Background(), "s1"); err != nil {
			t.Fatalf("roll failed: %v", err)
		}
	}

	rolls, err := env.serv.History(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rolls) != 3 {
		t.Fatalf("history length = %d, want 3", len(rolls))
	}
	// Новые первыми
	if rolls[0].ID < rolls[1].ID {
		t.Error("history must be ordered newest first")
	}

	if _, err := env.serv.History(context.Background(), "missing"); !errors.Is(err, model.ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}
