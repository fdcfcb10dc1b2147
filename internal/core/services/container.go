package services

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Journal   portssvc.JournalSvcFacade
	Reporting portssvc.ReportingSvcFacade
	DrillDown portssvc.DrillDownSvcFacade
}

// NewContainer creates a new service container with properly initialized
// dependencies. All services share one classifier instance.
func NewContainer(repos *portsrepo.RepositoryProvider) *Container {
	classifier := accounting.NewClassifier(nil)

	return &Container{
		Journal:   NewJournalService(repos.JournalRepo, repos.ChartRepo),
		Reporting: NewReportingService(repos.LedgerRepo, classifier),
		DrillDown: NewDrillDownService(repos.LedgerRepo, repos.ChartRepo, classifier),
	}
}
