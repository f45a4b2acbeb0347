package models

import "time"

// Role classifies a respondent and selects which question set they see.
// The literal values are the labels shown in the original form; they are
// stored as-is so exports stay readable for the HR side.
type Role string

const (
	RoleUnselected Role = "선택하세요"
	RoleMember     Role = "구성원(팀/지점)"
	RoleStaff      Role = "Staff(기획/HR/재무 등)"
	RoleLeader     Role = "리더(팀장/지점장/파트장)"
	RoleExecutive  Role = "임원"
)

// Roles lists every selectable role in presentation order.
var Roles = []Role{RoleMember, RoleStaff, RoleLeader, RoleExecutive}

// ParseRole maps a raw value onto a known role. Anything unknown is
// treated the same as "not selected yet", never as an error.
func ParseRole(v string) Role {
	for _, r := range Roles {
		if string(r) == v {
			return r
		}
	}
	return RoleUnselected
}

// DepartmentUnselected is the placeholder shown before a choice is made.
const DepartmentUnselected = "선택하세요"

// Departments is the closed set of departments a respondent can pick.
var Departments = []string{
	"경영지원실",
	"전략기획실",
	"인사총무팀",
	"재무회계팀",
	"IT전략실",
	"영업본부",
	"마케팅본부",
	"리스크관리실",
}

// ValidDepartment reports whether v is one of the fixed departments.
func ValidDepartment(v string) bool {
	for _, d := range Departments {
		if d == v {
			return true
		}
	}
	return false
}

// QuestionKind distinguishes 5-point scale items from open-ended ones.
type QuestionKind string

const (
	KindOrdinal  QuestionKind = "ordinal"
	KindFreeText QuestionKind = "free_text"
)

// Question is one survey item. Definitions are static and never mutated
// after process start.
type Question struct {
	ID     string       `json:"id"`
	Prompt string       `json:"prompt"`
	Kind   QuestionKind `json:"kind"`
}

// Submission is one completed survey response. Created once on submit,
// never updated or deleted.
type Submission struct {
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	EmployeeID  string            `json:"employee_id"`
	Department  string            `json:"department"`
	Role        Role              `json:"role"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt time.Time         `json:"submitted_at"`
}
