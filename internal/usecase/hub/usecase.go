package hub

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kiryu-dev/chess/internal/config"
	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/kiryu-dev/chess/internal/usecase/game"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var (
	ErrTooManySessions = errors.New("too many active sessions")
	ErrSessionInUse    = errors.New("game is already played from another connection")
)

type useCase struct {
	game        domain.GameUseCase
	sessions    map[string]*domain.Session
	maxSessions int
	idleTimeout time.Duration
	connections *atomic.Int64
	ticker      *time.Ticker
	done        chan struct{}
	closeOnce   sync.Once
	mu          *sync.RWMutex
	logger      *zap.Logger
}

func New(gameUseCase domain.GameUseCase, cfg config.HubConfig, logger *zap.Logger) *useCase {
	u := &useCase{
		game:        gameUseCase,
		sessions:    make(map[string]*domain.Session),
		maxSessions: cfg.MaxSessions,
		idleTimeout: cfg.IdleTimeout,
		connections: atomic.NewInt64(0),
		ticker:      time.NewTicker(cfg.CleanupPeriod),
		done:        make(chan struct{}),
		mu:          &sync.RWMutex{},
		logger:      logger,
	}
	go u.removeStaleGamesPeriodically()
	return u
}

func (u *useCase) Handle(ctx context.Context, client domain.Client) (err error) {
	u.connections.Inc()
	defer u.connections.Dec()
	session, ok, err := u.continueActiveGame(client)
	if err != nil {
		return errors.WithMessage(err, "continue game")
	}
	if !ok {
		session, err = u.createGame(client)
		if err != nil {
			return errors.WithMessage(err, "create game")
		}
	}
	defer session.Detach()
	defer func() {
		if r := recover(); r != nil {
			u.logger.Error("game aborted", zap.String("game uuid", session.Uuid()), zap.Any("reason", r))
			err = errors.Errorf("game %s aborted: %v", session.Uuid(), r)
		}
	}()
	if err := u.game.Play(ctx, client, session); err != nil {
		return errors.WithMessage(err, "play game")
	}
	return nil
}

func (u *useCase) createGame(client domain.Client) (*domain.Session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.maxSessions > 0 && len(u.sessions) >= u.maxSessions {
		if u.removeStaleGamesLocked(time.Now()) == 0 {
			return nil, ErrTooManySessions
		}
	}
	session := domain.NewSession(uuid.NewString(), client.Uuid(), game.NewState())
	session.Attach()
	u.sessions[session.Uuid()] = session
	u.logger.Info("created game",
		zap.String("game uuid", session.Uuid()),
		zap.String("client uuid", client.Uuid()),
	)
	return session, nil
}

// continueActiveGame attaches the client to its unfinished game, if there is one.
func (u *useCase) continueActiveGame(client domain.Client) (*domain.Session, bool, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	clientUuid := client.Uuid()
	for gameUuid, session := range u.sessions {
		if session.ClientUuid() != clientUuid || session.IsFinished() {
			continue
		}
		if !session.Attach() {
			return nil, false, errors.WithMessagef(ErrSessionInUse, "game %s", gameUuid)
		}
		u.logger.Info("found active game", zap.String("game uuid", gameUuid))
		return session, true, nil
	}
	return nil, false, nil
}

func (u *useCase) Session(gameUuid string) (*domain.Session, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	session, ok := u.sessions[gameUuid]
	return session, ok
}

func (u *useCase) Snapshot(session *domain.Session) domain.Snapshot {
	return u.game.Snapshot(session)
}

func (u *useCase) ActiveConnections() int64 {
	return u.connections.Load()
}

func (u *useCase) removeStaleGamesPeriodically() {
	defer u.ticker.Stop()
	for {
		select {
		case now := <-u.ticker.C:
			if removed := u.removeStaleGames(now); removed > 0 {
				u.logger.Info("removed stale games", zap.Int("count", removed))
			}
		case <-u.done:
			return
		}
	}
}

// removeStaleGames drops finished games and unfinished ones nobody has been
// connected to for the idle timeout.
func (u *useCase) removeStaleGames(now time.Time) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.removeStaleGamesLocked(now)
}

func (u *useCase) removeStaleGamesLocked(now time.Time) int {
	removed := 0
	for gameUuid, session := range u.sessions {
		if session.IsFinished() || session.IsIdle(now, u.idleTimeout) {
			delete(u.sessions, gameUuid)
			removed++
		}
	}
	return removed
}

func (u *useCase) Close() {
	u.closeOnce.Do(func() {
		close(u.done)
	})
}
