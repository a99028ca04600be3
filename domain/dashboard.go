package domain

type UserDashboard struct {
	WishlistCount     int64               `json:"wishlist_count"`
	ComparisonCount   int64               `json:"comparison_count"`
	ReviewCount       int64               `json:"review_count"`
	RecentComparisons []ComparisonHistory `json:"recent_comparisons"`
}

type AdminOverview struct {
	UserCount     int64 `json:"user_count"`
	CourseCount   int64 `json:"course_count"`
	ReviewCount   int64 `json:"review_count"`
	PlatformCount int64 `json:"platform_count"`
}
