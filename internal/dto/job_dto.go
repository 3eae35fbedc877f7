package dto

type JobCreateRequest struct {
	Title              string `json:"title" form:"title"`
	Description        string `json:"description" form:"description"`
	Company            string `json:"company" form:"company"`
	Location           string `json:"location" form:"location"`
	SalaryRange        string `json:"salary_range" form:"salary_range"`
	JobType            string `json:"job_type" form:"job_type"`
	WorkLocation       string `json:"work_location" form:"work_location"`
	ExperienceRequired int    `json:"experience_required" form:"experience_required"`
}
