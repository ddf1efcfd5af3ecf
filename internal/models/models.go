package models

// Table names keep the historical Spanish schema so an existing database
// file opens unchanged.

// Catalog is the shared shape of every toggleable reference table.
type Catalog struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Description string `gorm:"column:descripcion;not null" json:"descripcion"`
	Active      bool   `gorm:"column:activo;not null;default:true" json:"activo"`
}

type Route struct{ Catalog }

func (Route) TableName() string { return "rutas" }

type Group struct{ Catalog }

func (Group) TableName() string { return "grupos" }

type Guide struct{ Catalog }

func (Guide) TableName() string { return "guias" }

type Color struct{ Catalog }

func (Color) TableName() string { return "colores" }

// Shift description is copied into incidents at write time.
type Shift struct{ Catalog }

func (Shift) TableName() string { return "turnos" }

type IncidentType struct{ Catalog }

func (IncidentType) TableName() string { return "inc_tipos" }

// Assignment is one group's arrival on one date. Dates are YYYY-MM-DD text.
type Assignment struct {
	ID          int64  `gorm:"primaryKey"`
	Date        string `gorm:"column:fecha;not null"`
	RouteID     int64  `gorm:"column:ruta_id;not null"`
	GroupID     int64  `gorm:"column:grupo_id;not null"`
	ColorID     int64  `gorm:"column:color_id;not null"`
	GuideID     int64  `gorm:"column:guia_id;not null"`
	Pax         int    `gorm:"column:pax;not null;default:0"`
	ArrivalTime string `gorm:"column:hora_llegada;not null"`
}

func (Assignment) TableName() string { return "inc_grupos" }

// Incident stores the shift text, not the shift id.
type Incident struct {
	ID             int64  `gorm:"primaryKey"`
	Date           string `gorm:"column:fecha;not null"`
	Shift          string `gorm:"column:turno;not null"`
	GroupID        int64  `gorm:"column:grupo_id;not null"`
	IncidentTypeID int64  `gorm:"column:inc_tipo_id;not null"`
	Comment        string `gorm:"column:comentario;not null"`
}

func (Incident) TableName() string { return "incidencias" }

// User credentials are stored and compared in plaintext.
type User struct {
	Username string `gorm:"column:usuario;primaryKey" json:"usuario"`
	Password string `gorm:"column:clave;not null" json:"clave"`
	Role     string `gorm:"column:rol;not null" json:"rol"`
	Active   bool   `gorm:"column:activo;not null;default:true" json:"activo"`
}

func (User) TableName() string { return "usuarios" }

type Doctor struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nombre;not null" json:"nombre"`
}

func (Doctor) TableName() string { return "doctores" }

type Procedure struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nombre;not null" json:"nombre"`
}

func (Procedure) TableName() string { return "procedimientos" }

// BillingRecord is one billed procedure.
type BillingRecord struct {
	ID            int64   `gorm:"primaryKey"`
	Date          string  `gorm:"column:fecha;not null"`
	Patient       string  `gorm:"column:paciente;not null"`
	ProcedureID   int64   `gorm:"column:procedimiento;not null"`
	Difference    float64 `gorm:"column:diferencia"`
	Private       float64 `gorm:"column:privado"`
	Value         float64 `gorm:"column:valor"`
	AmountDue     float64 `gorm:"column:a_pagar"`
	Percent       float64 `gorm:"column:porciento"`
	PercentAmount float64 `gorm:"column:monto_pct"`
	DoctorID      int64   `gorm:"column:doctor;not null"`
}

func (BillingRecord) TableName() string { return "registros" }

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Route{}, &Group{}, &Guide{}, &Color{}, &Shift{}, &IncidentType{},
		&Assignment{}, &Incident{},
		&User{},
		&Doctor{}, &Procedure{}, &BillingRecord{},
	}
}
