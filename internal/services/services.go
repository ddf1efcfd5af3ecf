package services

import "gorm.io/gorm"

// Services bundles the registry's components over one store handle.
type Services struct {
	Catalogs    *CatalogStore
	Assignments *AssignmentLedger
	Incidents   *IncidentRecorder
	Reports     *ReportBuilder
	Billing     *BillingLedger
	Users       *UserDirectory
}

func New(db *gorm.DB, now Clock) *Services {
	return &Services{
		Catalogs:    NewCatalogStore(db),
		Assignments: NewAssignmentLedger(db, now),
		Incidents:   NewIncidentRecorder(db, now),
		Reports:     NewReportBuilder(db, now),
		Billing:     NewBillingLedger(db, now),
		Users:       NewUserDirectory(db),
	}
}
