package impl

import (
	"context"
	"log/slog"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	"blog/internal/errors"
	"blog/internal/usecase"

	"go.uber.org/fx"
)

type identityService struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve never tells the caller why a token was refused.
func (srv *identityService) Resolve(ctx context.Context, bearerToken string) (*entity.User, error) {
	if bearerToken == "" {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("missing bearer token")
	}

	claims, err := srv.tokenService.Decode(bearerToken)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token rejected")
	}

	if claims.SubjectID == 0 {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token has no subject")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Token subject no longer exists", slog.Int64("userID", claims.SubjectID))

			return nil, domainerrors.ErrUnauthenticated.WrapMessage("token subject not found")
		}

		return nil, errors.Wrap(err, "failed to load token subject")
	}

	return user, nil
}
