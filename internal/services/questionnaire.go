package services

import (
	"strconv"
	"strings"

	"github.com/seojoohe-netizen/ai-survey/internal/models"
)

// ScaleLabels are the five agreement options, in score order. Each label
// carries its score as a numeric prefix ("4.그렇다" scores 4); downstream
// aggregation must parse the prefix, never the full label.
var ScaleLabels = []string{
	"1.전혀 그렇지 않다",
	"2.그렇지 않다",
	"3.보통이다",
	"4.그렇다",
	"5.매우 그렇다",
}

// DefaultScaleLabel is the neutral midpoint the form preselects.
const DefaultScaleLabel = "3.보통이다"

// commonQuestions are asked of every role.
var commonQuestions = []models.Question{
	{ID: "공통_A1", Prompt: "1. 생성형 AI가 어떤 원리로 결과를 만들어내는지 개념적으로 이해하고 있다.", Kind: models.KindOrdinal},
	{ID: "공통_A2", Prompt: "2. 생성형 AI가 잘하는 영역과 한계가 무엇인지 알고 있다.", Kind: models.KindOrdinal},
	{ID: "공통_A3", Prompt: "3. AI 결과물은 항상 검증이 필요하다는 점을 인지하고 있다.", Kind: models.KindOrdinal},
	{ID: "공통_B1", Prompt: "4. 내 업무 중 AI로 보조하거나 대체할 수 있는 업무가 있다고 생각한다.", Kind: models.KindOrdinal},
	{ID: "공통_B2", Prompt: "5. AI 활용이 업무 효율을 높일 수 있다고 인식하고 있다.", Kind: models.KindOrdinal},
	{ID: "공통_B3", Prompt: "6. AI 활용 시 보안·정보 유출에 대한 기본적인 주의사항을 알고 있다.", Kind: models.KindOrdinal},
	{ID: "공통_C1", Prompt: "7. 원하는 결과를 얻기 위해 질문(프롬프트)을 수정·보완해 본 경험이 있다.", Kind: models.KindOrdinal},
	{ID: "공통_C2", Prompt: "8. AI에게 역할, 조건, 출력 형식을 지정해 요청할 수 있다.", Kind: models.KindOrdinal},
	{ID: "공통_C3", Prompt: "9. AI의 첫 번째 결과가 만족스럽지 않을 경우 개선을 시도한다.", Kind: models.KindOrdinal},
}

// roleQuestions are the role-specific addenda. Members get no addendum.
var roleQuestions = map[models.Role][]models.Question{
	models.RoleStaff: {
		{ID: "Staff_D1", Prompt: "10. 내 업무 중 반복적이거나 정형적인 작업을 명확히 구분할 수 있다.", Kind: models.KindOrdinal},
		{ID: "Staff_D2", Prompt: "11. 반복 업무를 줄이기 위해 업무 방식을 바꿔본 경험이 있다.", Kind: models.KindOrdinal},
		{ID: "Staff_D3", Prompt: "12. AI를 활용해 업무 절차를 단순화할 수 있다고 생각한다.", Kind: models.KindOrdinal},
		{ID: "Staff_E1", Prompt: "13. AI를 엑셀, 문서, 보고자료 작성 등 기존 업무툴과 함께 활용해본 경험이 있다.", Kind: models.KindOrdinal},
		{ID: "Staff_E2", Prompt: "14. AI를 활용해 자료 정리, 요약, 초안 작성을 수행할 수 있다.", Kind: models.KindOrdinal},
		{ID: "Staff_E3", Prompt: "15. AI 활용 경험이나 노하우를 동료와 공유해본 경험이 있다.", Kind: models.KindOrdinal},
	},
	models.RoleLeader: {
		{ID: "리더_F1", Prompt: "10. AI가 조직의 업무 방식에 미칠 영향을 이해하고 있다.", Kind: models.KindOrdinal},
		{ID: "리더_F2", Prompt: "11. 팀 내 업무 중 AI 적용이 가능한 영역을 식별할 수 있다.", Kind: models.KindOrdinal},
		{ID: "리더_F3", Prompt: "12. 팀원이 AI를 활용해 업무를 수행하는 것을 긍정적으로 인식한다.", Kind: models.KindOrdinal},
		{ID: "리더_G1", Prompt: "13. AI를 활용한 자료나 분석 결과를 의사결정 참고자료로 활용할 수 있다.", Kind: models.KindOrdinal},
		{ID: "리더_G2", Prompt: "14. AI 활용 시 발생할 수 있는 리스크(오류, 편향 등)를 인지하고 있다.", Kind: models.KindOrdinal},
	},
	models.RoleExecutive: {
		{ID: "임원_H1", Prompt: "10. AI 활용이 조직의 경쟁력 강화에 기여할 수 있다고 판단한다.", Kind: models.KindOrdinal},
		{ID: "임원_H2", Prompt: "11. AI 도입 시 비용 대비 효과를 고려한 판단이 가능하다.", Kind: models.KindOrdinal},
		{ID: "임원_H3", Prompt: "12. AI 활용을 위한 조직 차원의 준비 과제를 인식하고 있다.", Kind: models.KindOrdinal},
	},
}

// freeTextQuestions close out every composed set.
var freeTextQuestions = []models.Question{
	{ID: "주관식_1", Prompt: "1. 현재 업무 중 AI로 가장 줄이고 싶은 반복 업무는 무엇입니까?", Kind: models.KindFreeText},
	{ID: "주관식_2", Prompt: "2. AI 교육을 통해 가장 기대하는 점은 무엇입니까?", Kind: models.KindFreeText},
}

// Compose returns the full ordered question list for a role: the common
// set, the role addendum, then the free-text items. An unselected or
// unrecognized role yields an empty list, meaning the form is not active
// yet.
func Compose(role models.Role) []models.Question {
	switch role {
	case models.RoleMember, models.RoleStaff, models.RoleLeader, models.RoleExecutive:
	default:
		return nil
	}
	out := make([]models.Question, 0, len(commonQuestions)+len(roleQuestions[role])+len(freeTextQuestions))
	out = append(out, commonQuestions...)
	out = append(out, roleQuestions[role]...)
	out = append(out, freeTextQuestions...)
	return out
}

// AllQuestions returns the union of every question across all roles, in
// stable order: common, then each role addendum, then free text. This is
// the column order used by tabular exports so rows from different roles
// share one shape.
func AllQuestions() []models.Question {
	out := make([]models.Question, 0, 25)
	out = append(out, commonQuestions...)
	for _, role := range models.Roles {
		out = append(out, roleQuestions[role]...)
	}
	out = append(out, freeTextQuestions...)
	return out
}

// AllQuestionIDs returns the IDs of AllQuestions in the same order.
func AllQuestionIDs() []string {
	qs := AllQuestions()
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		ids = append(ids, q.ID)
	}
	return ids
}

// validScaleLabel reports whether v is one of the five scale labels.
func validScaleLabel(v string) bool {
	for _, l := range ScaleLabels {
		if l == v {
			return true
		}
	}
	return false
}

// IsComplete reports whether every ordinal question in the composed set
// holds one of the five scale labels. Free-text answers may be empty or
// missing entirely.
func IsComplete(answers map[string]string, composed []models.Question) bool {
	for _, q := range composed {
		if q.Kind != models.KindOrdinal {
			continue
		}
		if !validScaleLabel(answers[q.ID]) {
			return false
		}
	}
	return true
}

// ParseScaleScore extracts the canonical score from an ordinal answer
// label of the form "<digit>.<description>".
func ParseScaleScore(label string) (int, error) {
	head, _, ok := strings.Cut(label, ".")
	if !ok {
		return 0, NewInvalidError("scale label has no numeric prefix: " + label)
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, NewInvalidError("scale label has no numeric prefix: " + label)
	}
	if n < 1 || n > len(ScaleLabels) {
		return 0, NewInvalidError("scale score out of range: " + label)
	}
	return n, nil
}
