package dto

// DayCount 某天普通用户登录总次数。
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// UserCount 某邮箱在区间内的登录次数。
type UserCount struct {
	Email string `json:"email"`
	Count int64  `json:"count"`
}

// RangeQuery 统计区间查询参数，支持 YYYY-MM-DD 或 RFC3339。
type RangeQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}
