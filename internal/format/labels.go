package format

// Badge is the display class and label of a project status.
type Badge struct {
	Class string `json:"class"`
	Label string `json:"label"`
}

var statusBadges = map[string]Badge{
	"planning":    {Class: "badge-info", Label: "기획"},
	"in_progress": {Class: "badge-primary", Label: "진행중"},
	"completed":   {Class: "badge-success", Label: "완료"},
	"suspended":   {Class: "badge-warning", Label: "보류"},
	"cancelled":   {Class: "badge-danger", Label: "취소"},
}

// StatusBadge maps a project status to its badge. Unknown statuses get the
// secondary class and their raw value as label.
func StatusBadge(status string) Badge {
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return Badge{Class: "badge-secondary", Label: status}
}

var projectTypes = map[string]string{
	"consulting":       "해외기술용역",
	"oda_bilateral":    "ODA 양자",
	"oda_multilateral": "ODA 다자성양자",
	"k_rice_belt":      "K-라이스벨트",
	"investment":       "해외농업투자",
	"loan_support":     "융자·보조사업",
}

// ProjectTypeLabel returns the display name of a project type code.
func ProjectTypeLabel(code string) string {
	if l, ok := projectTypes[code]; ok {
		return l
	}
	return code
}

var departments = map[string]string{
	"gad":  "글로벌농업개발부",
	"gb":   "글로벌사업부",
	"aidc": "농식품국제개발협력센터",
}

// DepartmentLabel returns the display name of a department code.
func DepartmentLabel(code string) string {
	if l, ok := departments[code]; ok {
		return l
	}
	return code
}

// Toast kinds.
const (
	KindSuccess = "success"
	KindError   = "error"
	KindWarning = "warning"
	KindInfo    = "info"
)

var toastIcons = map[string]string{
	KindSuccess: "✓",
	KindError:   "✕",
	KindWarning: "⚠",
	KindInfo:    "ℹ",
}

// ToastIcon returns the glyph for a toast kind; unknown kinds use the info icon.
func ToastIcon(kind string) string {
	if icon, ok := toastIcons[kind]; ok {
		return icon
	}
	return toastIcons[KindInfo]
}
