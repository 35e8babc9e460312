package user

import (
	"fmt"
	"time"

	"github.com/klwxsrx/deskbooking/internal/pkg/auth"
	"github.com/klwxsrx/deskbooking/internal/pkg/cmd"
	"github.com/klwxsrx/deskbooking/internal/user/app/encoding"
	"github.com/klwxsrx/deskbooking/internal/user/app/notification"
	"github.com/klwxsrx/deskbooking/internal/user/app/policy"
	"github.com/klwxsrx/deskbooking/internal/user/app/service"
	"github.com/klwxsrx/deskbooking/internal/user/app/session"
	"github.com/klwxsrx/deskbooking/internal/user/domain"
	"github.com/klwxsrx/deskbooking/internal/user/infra"
	"github.com/klwxsrx/deskbooking/internal/user/infra/http"
	usermessage "github.com/klwxsrx/deskbooking/internal/user/infra/message"
	"github.com/klwxsrx/deskbooking/internal/user/infra/password"
	userredis "github.com/klwxsrx/deskbooking/internal/user/infra/redis"
	usersession "github.com/klwxsrx/deskbooking/internal/user/infra/session"
	pkgauth "github.com/klwxsrx/deskbooking/pkg/auth"
	"github.com/klwxsrx/deskbooking/pkg/env"
	pkghttp "github.com/klwxsrx/deskbooking/pkg/http"
	"github.com/klwxsrx/deskbooking/pkg/lazy"
	"github.com/klwxsrx/deskbooking/pkg/log"
	pkgmessage "github.com/klwxsrx/deskbooking/pkg/message"
	"github.com/klwxsrx/deskbooking/pkg/metric"
	"github.com/klwxsrx/deskbooking/pkg/observability"
	"github.com/klwxsrx/deskbooking/pkg/persistence"
	"github.com/klwxsrx/deskbooking/pkg/redis"
	"github.com/klwxsrx/deskbooking/pkg/sql"
	pkgtime "github.com/klwxsrx/deskbooking/pkg/time"
	"github.com/klwxsrx/deskbooking/pkg/worker"
)

const listDelimiter = ","

type DependencyContainer struct {
	AuthService lazy.Loader[service.Authentication]
	UserService lazy.Loader[service.User]

	observer lazy.Loader[observability.Observer]
}

func NewDependencyContainer(
	db lazy.Loader[sql.Database],
	dbMigrations lazy.Loader[cmd.SQLMigrations],
	redisClient lazy.Loader[redis.Client],
	messageProducer lazy.Loader[pkgmessage.Producer],
	metrics lazy.Loader[metric.Metrics],
	observer lazy.Loader[observability.Observer],
	logger lazy.Loader[log.Logger],
) DependencyContainer {
	clock := lazy.Value[pkgtime.Clock](pkgtime.NewClock())
	transaction := transactionProvider(db)
	sqlContainer := infra.NewSQLContainer(db, dbMigrations)

	validityCache := validityCacheProvider(redisClient, sqlContainer, logger)
	passwordHasher := passwordHasherProvider()
	sessionTokens := sessionTokenGeneratorProvider(clock)
	tokenValidator := tokenValidatorProvider(sessionTokens, validityCache, metrics, logger)
	authPolicy := authPolicyProvider()
	notifier := notifierProvider(messageProducer)
	permissionService := permissionServiceProvider()

	authService := lazy.New(func() (service.Authentication, error) {
		return service.NewAuthentication(
			sqlContainer.MustLoad().UserRepo.MustLoad(),
			transaction.MustLoad(),
			validityCache.MustLoad(),
			sessionTokens.MustLoad(),
			tokenValidator.MustLoad(),
			passwordHasher.MustLoad(),
			authPolicy.MustLoad(),
			notifier.MustLoad(),
			permissionService.MustLoad(),
			clock.MustLoad(),
			logger.MustLoad(),
		), nil
	})
	userService := lazy.New(func() (service.User, error) {
		return service.NewUser(
			sqlContainer.MustLoad().UserRepo.MustLoad(),
			transaction.MustLoad(),
			validityCache.MustLoad(),
			sessionTokens.MustLoad(),
			tokenValidator.MustLoad(),
			passwordHasher.MustLoad(),
			authPolicy.MustLoad(),
			notifier.MustLoad(),
			permissionService.MustLoad(),
			clock.MustLoad(),
		), nil
	})

	return DependencyContainer{
		AuthService: authService,
		UserService: userService,
		observer:    observer,
	}
}

func (c *DependencyContainer) MustRegisterHTTPHandlers(registry pkghttp.HandlerRegistry) {
	authService := c.AuthService.MustLoad()
	userService := c.UserService.MustLoad()
	withAuth := http.WithAuthentication(authService, c.observer.MustLoad())
	errorMapping := http.WithErrorMapping()

	registry.Register(http.NewAuthenticateHandler(authService), errorMapping)
	registry.Register(http.NewVerifyAuthenticationHandler(authService), errorMapping)
	registry.Register(http.NewRequestPasswordResetHandler(authService), errorMapping)
	registry.Register(http.NewResetPasswordHandler(authService), errorMapping)
	registry.Register(http.NewRegisterUserHandler(userService), errorMapping)
	registry.Register(http.NewVerifyEmailHandler(userService), errorMapping)

	registry.Register(http.NewRevokeSessionsHandler(authService), append(withAuth, errorMapping)...)
	registry.Register(http.NewChangePasswordHandler(authService), append(withAuth, errorMapping)...)
	registry.Register(http.NewGetCurrentUserHandler(userService), append(withAuth, errorMapping)...)
	registry.Register(http.NewGetUserByIDHandler(userService), append(withAuth, errorMapping)...)
	registry.Register(http.NewDeleteUserByIDHandler(userService), append(withAuth, errorMapping)...)
}

func transactionProvider(db lazy.Loader[sql.Database]) lazy.Loader[persistence.Transaction] {
	return lazy.New(func() (persistence.Transaction, error) {
		return sql.NewTransaction(db.MustLoad(), domain.Name), nil
	})
}

func validityCacheProvider(
	redisClient lazy.Loader[redis.Client],
	sqlContainer lazy.Loader[infra.SQLContainer],
	logger lazy.Loader[log.Logger],
) lazy.Loader[userredis.ValidityCache] {
	return lazy.New(func() (userredis.ValidityCache, error) {
		ttl := env.Must(env.ParseWithDefault("TOKEN_VALIDITY_CACHE_TTL", userredis.DefaultValidityCacheTTL))
		return userredis.NewValidityCache(
			redisClient.MustLoad(),
			sqlContainer.MustLoad().ValidityTracker.MustLoad(),
			ttl,
			logger.MustLoad(),
		), nil
	})
}

func passwordHasherProvider() lazy.Loader[encoding.PasswordHasher] {
	return lazy.New(func() (encoding.PasswordHasher, error) {
		defaults := password.DefaultConfig()
		config := password.Config{
			MemoryKB:    uint32(env.Must(env.ParseWithDefault("PASSWORD_HASH_MEMORY_KB", uint(defaults.MemoryKB)))),
			Time:        uint32(env.Must(env.ParseWithDefault("PASSWORD_HASH_TIME", uint(defaults.Time)))),
			Parallelism: uint8(env.Must(env.ParseWithDefault("PASSWORD_HASH_PARALLELISM", uint(defaults.Parallelism)))),
		}

		hasher, err := password.NewHasher(config, worker.NewPool(worker.MaxWorkersCountNumCPU))
		if err != nil {
			return nil, fmt.Errorf("init password hasher: %w", err)
		}

		return hasher, nil
	})
}

func sessionTokenGeneratorProvider(clock lazy.Loader[pkgtime.Clock]) lazy.Loader[session.TokenGenerator] {
	return lazy.New(func() (session.TokenGenerator, error) {
		generator, err := usersession.NewTokenGenerator(usersession.Config{
			Secret: []byte(env.Must(env.Parse[string]("AUTH_TOKEN_SECRET"))),
			Issuer: env.Must(env.ParseWithDefault("AUTH_TOKEN_ISSUER", usersession.DefaultIssuer)),
		}, clock.MustLoad())
		if err != nil {
			return nil, fmt.Errorf("init token generator: %w", err)
		}

		return generator, nil
	})
}

func tokenValidatorProvider(
	sessionTokens lazy.Loader[session.TokenGenerator],
	validityCache lazy.Loader[userredis.ValidityCache],
	metrics lazy.Loader[metric.Metrics],
	logger lazy.Loader[log.Logger],
) lazy.Loader[service.TokenValidator] {
	return lazy.New(func() (service.TokenValidator, error) {
		return service.NewObservedTokenValidator(
			service.NewTokenValidator(sessionTokens.MustLoad(), validityCache.MustLoad()),
			metrics.MustLoad(),
			logger.MustLoad(),
		), nil
	})
}

func authPolicyProvider() lazy.Loader[policy.AuthPolicy] {
	return lazy.New(func() (policy.AuthPolicy, error) {
		authPolicy, err := policy.New(policy.Config{
			AllowedEmailDomains: env.Must(env.ParseOptionalList[string]("AUTH_ALLOWED_EMAIL_DOMAINS", listDelimiter)),
			AllowedEmails:       env.Must(env.ParseOptionalList[string]("AUTH_ALLOWED_EMAILS", listDelimiter)),
			EmailVerificationTTL: env.Must(env.ParseWithDefault[time.Duration](
				"AUTH_EMAIL_VERIFICATION_TTL",
				policy.DefaultEmailVerificationTTL,
			)),
			PasswordResetTTL: env.Must(env.ParseWithDefault[time.Duration](
				"AUTH_PASSWORD_RESET_TTL",
				policy.DefaultPasswordResetTTL,
			)),
		})
		if err != nil {
			return nil, fmt.Errorf("init auth policy: %w", err)
		}

		return authPolicy, nil
	})
}

func notifierProvider(messageProducer lazy.Loader[pkgmessage.Producer]) lazy.Loader[notification.Notifier] {
	return lazy.New(func() (notification.Notifier, error) {
		return usermessage.NewNotifier(messageProducer.MustLoad()), nil
	})
}

func permissionServiceProvider() lazy.Loader[auth.PermissionService] {
	return lazy.New(func() (auth.PermissionService, error) {
		return pkgauth.NewPermissionService[auth.Principal](), nil
	})
}
