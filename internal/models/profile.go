package models

// 기본 대화 기록 조회 개수
const DefaultHistoryLimit = 100

// 사용자 라이프 프로필, 계정당 하나
type Profile struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"user_id"`
	FullName         string `json:"full_name"`
	BirthDate        string `json:"birth_date"`
	BirthPlace       string `json:"birth_place"`
	Location         string `json:"location"`
	FamilyInfo       string `json:"family_info"`
	EducationHistory string `json:"education_history"`
	WorkHistory      string `json:"work_history"`
	TimelineData     string `json:"timeline_data"`
	HistoryLimit     int    `json:"history_limit"`
}

// ProfileUpdate carries a partial update. A nil field is left untouched.
type ProfileUpdate struct {
	FullName         *string `json:"full_name"`
	BirthDate        *string `json:"birth_date"`
	BirthPlace       *string `json:"birth_place"`
	Location         *string `json:"location"`
	FamilyInfo       *string `json:"family_info"`
	EducationHistory *string `json:"education_history"`
	WorkHistory      *string `json:"work_history"`
	TimelineData     *string `json:"timeline_data"`
	HistoryLimit     *int    `json:"history_limit"`
}

// 프롬프트에 들어갈 프로필 항목 (선언 순서 유지)
type ProfileField struct {
	Label string
	Value string
}

// Fields returns the free-text attributes in declaration order.
func (p Profile) Fields() []ProfileField {
	return []ProfileField{
		{Label: "Name", Value: p.FullName},
		{Label: "Birth Date", Value: p.BirthDate},
		{Label: "Birth Place", Value: p.BirthPlace},
		{Label: "Location", Value: p.Location},
		{Label: "Family", Value: p.FamilyInfo},
		{Label: "Education", Value: p.EducationHistory},
		{Label: "Work", Value: p.WorkHistory},
	}
}

// EffectiveHistoryLimit falls back to the default when the stored value is unset.
func (p Profile) EffectiveHistoryLimit() int {
	if p.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return p.HistoryLimit
}
