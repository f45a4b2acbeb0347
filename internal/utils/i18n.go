package utils

// Server-side i18n for the fixed message set. Every reject reason maps
// to exactly one user-visible message per locale; the Korean copy is
// the original form's wording.

var translations = map[string]map[string]string{
	"ko": {
		"health.ok":                     "정상",
		"submit.ok":                     "소중한 응답 감사합니다! 제출이 완료되었습니다.",
		"form.inactive":                 "성함을 입력하고 직책을 선택하시면 진단 문항이 나타납니다.",
		"window.not_yet_open":           "아직 진단 기간이 시작되지 않았습니다.",
		"window.closed":                 "진단 기간이 종료되었습니다.",
		"window.closed_warn":            "진단 기간이 종료되었습니다. 응답은 참고용으로만 집계됩니다.",
		"reject.missing_name":           "성함을 입력해 주세요!",
		"reject.invalid_identifier":     "사번을 정확히 입력해 주세요.",
		"reject.missing_classification": "부서와 직책을 선택해 주세요.",
		"reject.incomplete_answers":     "모든 문항에 응답해 주세요.",
		"reject.duplicate_identifier":   "이미 제출된 사번입니다. 중복 제출은 불가합니다.",
		"reject.window_closed":          "진단 기간이 아니므로 제출할 수 없습니다.",
		"reject.unauthorized":           "비밀번호가 올바르지 않습니다.",
		"reject.storage_unavailable":    "저장소 오류로 제출하지 못했습니다. 잠시 후 다시 시도해 주세요.",
	},
	"en": {
		"health.ok":                     "ok",
		"submit.ok":                     "Thank you! Your response has been recorded.",
		"form.inactive":                 "Enter your name and select a role to see the questions.",
		"window.not_yet_open":           "The survey has not opened yet.",
		"window.closed":                 "The survey window has closed.",
		"window.closed_warn":            "The survey window has closed; late responses are counted for reference only.",
		"reject.missing_name":           "Please enter your name.",
		"reject.invalid_identifier":     "Please enter a valid employee number.",
		"reject.missing_classification": "Please select your department and role.",
		"reject.incomplete_answers":     "Please answer every question.",
		"reject.duplicate_identifier":   "A response for this employee number already exists.",
		"reject.window_closed":          "Submissions are closed outside the survey window.",
		"reject.unauthorized":           "Wrong password.",
		"reject.storage_unavailable":    "Could not save your response due to a storage error. Please try again later.",
	},
}

// T returns the translated string for key in locale, falling back to
// Korean, then to the key itself.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["ko"][key]; ok {
		return v
	}
	return key
}
