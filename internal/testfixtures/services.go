package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/meeting-coordinator/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// TeamServiceDeps captures dependencies for constructing a team service.
type TeamServiceDeps struct {
	Teams       application.TeamStore
	Memberships application.MembershipStore
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewTeamService builds a team service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewTeamService(deps TeamServiceDeps) *application.TeamService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewTeamService(
		deps.Teams,
		deps.Memberships,
		idGen,
		now,
		deps.Logger,
	)
}

// MeetingServiceDeps captures dependencies for constructing a meeting service.
type MeetingServiceDeps struct {
	Teams  application.TeamStore
	Users  application.UserDirectory
	Issuer application.RoomIssuer
	Now    func() time.Time
	Logger *slog.Logger
}

// NewMeetingService builds a meeting service using the supplied dependencies.
func (f *ServiceFactory) NewMeetingService(deps MeetingServiceDeps) *application.MeetingService {
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewMeetingService(
		deps.Teams,
		application.NewMembershipResolver(deps.Users),
		deps.Issuer,
		now,
		deps.Logger,
	)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Accounts       application.AccountStore
	Sessions       application.SessionStore
	IDGenerator    func() string
	TokenGenerator func() string
	Now            func() time.Time
	SessionTTL     time.Duration
	Logger         *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	token := deps.TokenGenerator
	if token == nil {
		token = idGen
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewAuthService(
		deps.Accounts,
		deps.Sessions,
		idGen,
		token,
		now,
		deps.SessionTTL,
		deps.Logger,
	)
}
