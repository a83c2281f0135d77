package container

import (
	"database/sql"

	"github.com/SeanMWG/inventory-app/internal/auditlog"
	"github.com/SeanMWG/inventory-app/internal/config"
	"github.com/SeanMWG/inventory-app/internal/hardware"
	"github.com/SeanMWG/inventory-app/internal/loaners"
	"github.com/SeanMWG/inventory-app/internal/locations"
	"github.com/SeanMWG/inventory-app/internal/repository"
	"github.com/SeanMWG/inventory-app/pkg/security"
)

type Container struct {
	Repository      *repository.Repository
	TokenService    *security.TokenService
	LoginHandler    *security.LoginHandler
	AzureHandler    *security.AzureLoginHandler
	HardwareHandler *hardware.HardwareHandler
	LocationHandler *locations.LocationHandler
	LoanerHandler   *loaners.LoanerHandler
	AuditLogHandler *auditlog.AuditLogHandler
}

func NewAppContainer(db *sql.DB, cfg *config.Config) *Container {
	repo := repository.NewRepository(db)
	auditRepo := auditlog.NewRepository(repo)
	tokens := security.NewTokenService(cfg.JWTSecret)

	hardwareRepo := hardware.NewHardwareRepository(repo, auditRepo)
	locationRepo := locations.NewLocationRepository(repo, auditRepo)
	loanerRepo := loaners.NewLoanerRepository(repo)
	loanerService := loaners.NewLoanerService(repo, loanerRepo, auditRepo)

	container := &Container{
		Repository:      repo,
		TokenService:    tokens,
		LoginHandler:    security.NewLoginHandler(repo, tokens),
		HardwareHandler: hardware.NewHardwareHandler(hardwareRepo),
		LocationHandler: locations.NewLocationHandler(locationRepo),
		LoanerHandler:   loaners.NewLoanerHandler(loanerService),
		AuditLogHandler: auditlog.NewHandler(auditRepo),
	}

	if cfg.Azure.Enabled() {
		container.AzureHandler = security.NewAzureLoginHandler(cfg.Azure, tokens)
	}

	return container
}
