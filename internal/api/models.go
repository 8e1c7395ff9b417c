package api

import (
	"net/url"
	"strconv"

	"github.com/krcglobal/gbms/internal/session"
)

// Envelope is the response wrapper used by every backend endpoint.
type Envelope[T any] struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	Data        T      `json:"data"`
	Total       int    `json:"total,omitempty"`
	Pages       int    `json:"pages,omitempty"`
	CurrentPage int    `json:"currentPage,omitempty"`
	Count       int    `json:"count,omitempty"`
}

// User is the backend user record.
type User = session.User

// Project is an overseas project.
type Project struct {
	ID          int      `json:"id"`
	Code        string   `json:"code"`
	Title       string   `json:"title"`
	TitleEn     string   `json:"titleEn,omitempty"`
	ProjectType string   `json:"projectType"`
	Country     string   `json:"country"`
	CountryCode string   `json:"countryCode,omitempty"`
	Region      string   `json:"region,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Department  string   `json:"department"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	BudgetTotal float64  `json:"budgetTotal"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
	Client      string   `json:"client,omitempty"`

	Description    string  `json:"description,omitempty"`
	Objectives     string  `json:"objectives,omitempty"`
	Scope          string  `json:"scope,omitempty"`
	DurationMonths int     `json:"durationMonths,omitempty"`
	BudgetKrw      float64 `json:"budgetKrw,omitempty"`
	BudgetForeign  float64 `json:"budgetForeign,omitempty"`
	Currency       string  `json:"currency,omitempty"`
	Partner        string  `json:"partner,omitempty"`
}

// ProjectFilter narrows a project listing. Zero fields are omitted.
type ProjectFilter struct {
	Page       int
	PerPage    int
	Type       string
	Department string
	Status     string
	Country    string
	Year       int
	Search     string
}

func (f ProjectFilter) values() url.Values {
	v := url.Values{}
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	setString(v, "type", f.Type)
	setString(v, "department", f.Department)
	setString(v, "status", f.Status)
	setString(v, "country", f.Country)
	setInt(v, "year", f.Year)
	setString(v, "search", f.Search)
	return v
}

// ProjectStats is the project statistics summary.
type ProjectStats struct {
	Total        int            `json:"total"`
	InProgress   int            `json:"inProgress"`
	Completed    int            `json:"completed"`
	Planning     int            `json:"planning"`
	ByType       map[string]int `json:"byType"`
	ByDepartment map[string]int `json:"byDepartment"`
	ByCountry    map[string]int `json:"byCountry"`
	TotalBudget  float64        `json:"totalBudget"`
}

// Budget is one budget line of a project.
type Budget struct {
	ID              int     `json:"id"`
	ProjectID       int     `json:"projectId"`
	Year            int     `json:"year"`
	Category        string  `json:"category"`
	SubCategory     string  `json:"subCategory,omitempty"`
	Description     string  `json:"description,omitempty"`
	AmountPlanned   float64 `json:"amountPlanned"`
	AmountExecuted  float64 `json:"amountExecuted"`
	AmountRemaining float64 `json:"amountRemaining"`
	ExecutionRate   float64 `json:"executionRate"`
}

// BudgetFilter narrows a budget listing.
type BudgetFilter struct {
	ProjectID int
	Year      int
	Category  string
	Page      int
	PerPage   int
}

func (f BudgetFilter) values() url.Values {
	v := url.Values{}
	setInt(v, "project_id", f.ProjectID)
	setInt(v, "year", f.Year)
	setString(v, "category", f.Category)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

// Execution is a recorded spend against a budget.
type Execution struct {
	ID            int     `json:"id,omitempty"`
	BudgetID      int     `json:"budgetId,omitempty"`
	ExecutionDate string  `json:"executionDate"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
	VoucherNo     string  `json:"voucherNo,omitempty"`
}

// BudgetStats is the budget statistics summary for one year.
type BudgetStats struct {
	Year          int           `json:"year"`
	TotalPlanned  float64       `json:"totalPlanned"`
	TotalExecuted float64       `json:"totalExecuted"`
	ExecutionRate float64       `json:"executionRate"`
	ByDepartment  []BudgetSlice `json:"byDepartment"`
	ByCategory    []BudgetSlice `json:"byCategory"`
}

// BudgetSlice is the planned and executed total of one department or
// category. Exactly one of Department and Category is set.
type BudgetSlice struct {
	Department string  `json:"department,omitempty"`
	Category   string  `json:"category,omitempty"`
	Planned    float64 `json:"planned"`
	Executed   float64 `json:"executed"`
	Rate       float64 `json:"rate"`
}

// Document is an uploaded project document.
type Document struct {
	ID          int    `json:"id"`
	ProjectID   *int   `json:"projectId,omitempty"`
	Title       string `json:"title"`
	DocType     string `json:"docType"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	FileType    string `json:"fileType,omitempty"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	IsPublic    bool   `json:"isPublic"`
	Department  string `json:"department,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// DocumentFilter narrows a document listing.
type DocumentFilter struct {
	ProjectID  int
	Type       string
	Department string
	Search     string
	Page       int
	PerPage    int
}

func (f DocumentFilter) values() url.Values {
	v := url.Values{}
	setInt(v, "project_id", f.ProjectID)
	setString(v, "type", f.Type)
	setString(v, "department", f.Department)
	setString(v, "search", f.Search)
	setInt(v, "page", f.Page)
	setInt(v, "per_page", f.PerPage)
	return v
}

// DocumentUpload is the metadata sent with an uploaded file.
type DocumentUpload struct {
	Title       string
	DocType     string
	ProjectID   int
	Description string
	Department  string
}

// Office is an overseas office.
type Office struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Country         string  `json:"country"`
	CountryCode     string  `json:"countryCode,omitempty"`
	Region          string  `json:"region,omitempty"`
	City            string  `json:"city,omitempty"`
	Address         string  `json:"address,omitempty"`
	OfficeType      string  `json:"officeType,omitempty"`
	Status          string  `json:"status,omitempty"`
	ContactPerson   string  `json:"contactPerson,omitempty"`
	ContactEmail    string  `json:"contactEmail,omitempty"`
	ContactPhone    string  `json:"contactPhone,omitempty"`
	EstablishedDate string  `json:"establishedDate,omitempty"`
	AnnualBudget    float64 `json:"annualBudget"`
}

// OfficeFilter narrows an office listing.
type OfficeFilter struct {
	Status string
	Type   string
	Region string
}

func (f OfficeFilter) values() url.Values {
	v := url.Values{}
	setString(v, "status", f.Status)
	setString(v, "type", f.Type)
	setString(v, "region", f.Region)
	return v
}

// PasswordChange is the body of a password update.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword"`
}

// Overview is the dashboard summary.
type Overview struct {
	Projects struct {
		Total      int `json:"total"`
		InProgress int `json:"inProgress"`
		Completed  int `json:"completed"`
		Planning   int `json:"planning"`
	} `json:"projects"`
	Countries int `json:"countries"`
	Offices   int `json:"offices"`
	Budget    struct {
		Total         float64 `json:"total"`
		Planned       float64 `json:"planned"`
		Executed      float64 `json:"executed"`
		ExecutionRate float64 `json:"executionRate"`
	} `json:"budget"`
	ByType       map[string]int `json:"byType"`
	ByDepartment map[string]int `json:"byDepartment"`
}

// Event is an upcoming deadline shown on the dashboard.
type Event struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Department  string `json:"department,omitempty"`
}

// DepartmentBudget is the current-year budget of one department.
type DepartmentBudget struct {
	Department     string  `json:"department"`
	DepartmentName string  `json:"departmentName"`
	Planned        float64 `json:"planned"`
	Executed       float64 `json:"executed"`
	Rate           float64 `json:"rate"`
}

// CountryStat aggregates projects per country.
type CountryStat struct {
	Country      string  `json:"country"`
	CountryCode  string  `json:"countryCode,omitempty"`
	Region       string  `json:"region,omitempty"`
	ProjectCount int     `json:"projectCount"`
	TotalBudget  float64 `json:"totalBudget"`
}

// Activity is one audit log entry.
type Activity struct {
	ID          int    `json:"id"`
	UserID      *int   `json:"userId,omitempty"`
	UserName    string `json:"userName,omitempty"`
	Action      string `json:"action"`
	EntityType  string `json:"entityType,omitempty"`
	EntityID    *int   `json:"entityId,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// GISProject is a project marker for the map view. ODA and consulting
// projects share this shape.
type GISProject struct {
	Source      string   `json:"source,omitempty"`
	Title       string   `json:"title"`
	TitleEn     string   `json:"titleEn,omitempty"`
	Name        string   `json:"name,omitempty"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Category    string   `json:"category,omitempty"`
	Type        string   `json:"type,omitempty"`
	Status      string   `json:"status,omitempty"`
	Client      string   `json:"client,omitempty"`
	BudgetTotal float64  `json:"budgetTotal"`
}

// GISFilter narrows the map project listing.
type GISFilter struct {
	Type              string
	Category          string
	Country           string
	Status            string
	Search            string
	ExcludeConsulting bool
}

func (f GISFilter) values() url.Values {
	v := url.Values{}
	setString(v, "type", f.Type)
	setString(v, "category", f.Category)
	setString(v, "country", f.Country)
	setString(v, "status", f.Status)
	setString(v, "search", f.Search)
	if f.ExcludeConsulting {
		v.Set("includeConsulting", "false")
	}
	return v
}

// GISStats summarizes mapped projects.
type GISStats struct {
	Consulting         int            `json:"consulting"`
	ODA                int            `json:"oda"`
	Total              int            `json:"total"`
	ConsultingProjects int            `json:"consultingProjects"`
	RegularConsulting  int            `json:"regularConsulting"`
	ByCountry          map[string]int `json:"byCountry"`
}

// Location is a project coordinate pair.
type Location struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func setString(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func setInt(v url.Values, key string, value int) {
	if value != 0 {
		v.Set(key, strconv.Itoa(value))
	}
}
