package models

// CountByKey is a single group-by bucket in an analytics response.
type CountByKey struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AccountStats summarizes accounts, optionally scoped to a county.
type AccountStats struct {
	TotalUsers      int          `json:"total_users"`
	VerifiedUsers   int          `json:"verified_users"`
	ActiveUsers     int          `json:"active_users"`
	NewUsers30Days  int          `json:"new_users_30_days"`
	ByRole          []CountByKey `json:"by_role"`
	County          string       `json:"county,omitempty"`
}

// WeatherStats summarizes weather readings over a window.
type WeatherStats struct {
	PeriodDays  int     `json:"period_days"`
	DataPoints  int     `json:"data_points"`
	AvgTemp     float64 `json:"average_temperature"`
	AvgHumidity float64 `json:"average_humidity"`
	AvgRainfall float64 `json:"average_rainfall"`
	County      string  `json:"county,omitempty"`
}

// ObservationStats summarizes field observations over a window.
type ObservationStats struct {
	PeriodDays      int          `json:"period_days"`
	Total           int          `json:"total_observations"`
	ByType          []CountByKey `json:"by_type"`
	ByStatus        []CountByKey `json:"by_status"`
	AvgQualityScore float64      `json:"average_quality_score"`
	County          string       `json:"county,omitempty"`
}

// PestDiseaseStats summarizes pest/disease reports over a window.
type PestDiseaseStats struct {
	PeriodDays int          `json:"period_days"`
	Total      int          `json:"total_reports"`
	Unresolved int          `json:"unresolved_reports"`
	ByType     []CountByKey `json:"by_type"`
	BySeverity []CountByKey `json:"by_severity"`
	TopIssues  []CountByKey `json:"top_issues"`
	County     string       `json:"county,omitempty"`
}

// AlertStats summarizes alerts over a window.
type AlertStats struct {
	PeriodDays      int          `json:"period_days"`
	Total           int          `json:"total_alerts"`
	Active          int          `json:"active_alerts"`
	ByType          []CountByKey `json:"by_type"`
	BySeverity      []CountByKey `json:"by_severity"`
	TotalRecipients int          `json:"total_recipients"`
	County          string       `json:"county,omitempty"`
}

// Dashboard is the comprehensive analytics view.
type Dashboard struct {
	Users        AccountStats     `json:"users"`
	Weather      WeatherStats     `json:"weather"`
	Observations ObservationStats `json:"observations"`
	PestDisease  PestDiseaseStats `json:"pest_disease"`
	Alerts       AlertStats       `json:"alerts"`
	Community    CommunityStats   `json:"community"`
	GeneratedAt  string           `json:"generated_at"`
}

// FarmerDashboard is the home view of a farmer account.
type FarmerDashboard struct {
	Account             *Account     `json:"account"`
	ActiveAlerts        []*Alert     `json:"active_alerts"`
	Weather             *WeatherData `json:"weather,omitempty"`
	UnreadNotifications int          `json:"unread_notifications"`
}

// FieldOfficerDashboard is the work queue view of a field officer.
type FieldOfficerDashboard struct {
	PendingVerifications int      `json:"pending_verifications"`
	ObservationsToday    int      `json:"observations_today"`
	UnresolvedReports    int      `json:"unresolved_reports"`
	ActiveAlerts         []*Alert `json:"active_alerts"`
}

// OnboardingStatus tracks how far an account has come through setup.
type OnboardingStatus struct {
	PhoneVerified      bool `json:"phone_verified"`
	ProfileComplete    bool `json:"profile_complete"`
	NotificationsSetUp bool `json:"notifications_set_up"`
	Complete           bool `json:"complete"`
}

// Location is a reverse-geocoded administrative area.
type Location struct {
	County    string `json:"county"`
	Subcounty string `json:"subcounty"`
	Ward      string `json:"ward"`
	Village   string `json:"village"`
}
