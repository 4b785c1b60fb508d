package gateway

// Entity shapes mirror the admin API's JSON responses.

type User struct {
	ID                      int64   `json:"id"`
	FirstName               string  `json:"first_name"`
	LastName                string  `json:"last_name"`
	Email                   string  `json:"email"`
	PhoneNumber             *string `json:"phone_number"`
	CreatedAt               string  `json:"created_at"`
	EmailVerified           bool    `json:"email_verified"`
	PhoneVerified           bool    `json:"phone_verified"`
	IDVerified              bool    `json:"id_verified"`
	Banned                  bool    `json:"banned"`
	IsAdmin                 bool    `json:"is_admin"`
	IDImageURL              string  `json:"id_image_url,omitempty"`
	Age                     int     `json:"age,omitempty"`
	Gender                  string  `json:"gender,omitempty"`
	ProfileImageURL         string  `json:"profile_image_url,omitempty"`
	VerificationSubmittedAt string  `json:"verification_submitted_at,omitempty"`
	PreferredBank           string  `json:"preferred_bank,omitempty"`
	BankAccountNumber       string  `json:"bank_account_number,omitempty"`
}

type PendingVerification struct {
	ID                int64   `json:"id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Email             string  `json:"email"`
	PhoneNumber       *string `json:"phone_number"`
	CreatedAt         string  `json:"created_at"`
	IDImageURL        string  `json:"id_image_url"`
	Age               int     `json:"age,omitempty"`
	Gender            string  `json:"gender,omitempty"`
	PreferredBank     string  `json:"preferred_bank,omitempty"`
	BankAccountNumber string  `json:"bank_account_number,omitempty"`
}

type RideParticipant struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsDriver  bool   `json:"is_driver,omitempty"`
}

type Ride struct {
	ID             int64             `json:"id"`
	DriverID       int64             `json:"driver_id"`
	FromAddress    string            `json:"from_address"`
	ToAddress      string            `json:"to_address"`
	TotalSeats     int               `json:"total_seats"`
	SeatsAvailable int               `json:"seats_available"`
	DepartureTime  *string           `json:"departure_time"`
	Status         string            `json:"status"`
	CreatedAt      string            `json:"created_at"`
	PlateNumber    string            `json:"plate_number"`
	Color          string            `json:"color"`
	BrandName      string            `json:"brand_name"`
	PricePerSeat   float64           `json:"price_per_seat"`
	Driver         *User             `json:"driver,omitempty"`
	Participants   []RideParticipant `json:"participants,omitempty"`
}

type RideMessage struct {
	ID        int64  `json:"id"`
	RideID    int64  `json:"ride_id"`
	SenderID  int64  `json:"sender_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type SOSAlert struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	UserName  string  `json:"user_name"`
	RideID    int64   `json:"ride_id"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type Report struct {
	ID             int64  `json:"id"`
	ReporterID     int64  `json:"reporter_id"`
	ReportedUserID int64  `json:"reported_user_id"`
	ReporterEmail  string `json:"reporter_email,omitempty"`
	ReportedEmail  string `json:"reported_email,omitempty"`
	RideID         int64  `json:"ride_id,omitempty"`
	Reason         string `json:"reason"`
	Description    string `json:"description,omitempty"`
	Resolved       bool   `json:"resolved"`
	CreatedAt      string `json:"created_at"`
}

type Payment struct {
	ID               int64   `json:"id"`
	RideID           int64   `json:"ride_id"`
	DriverID         int64   `json:"driver_id"`
	DriverEmail      string  `json:"driver_email"`
	Amount           float64 `json:"amount"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
	PaymentReference string  `json:"payment_reference,omitempty"`
	FromAddress      string  `json:"from_address,omitempty"`
	ToAddress        string  `json:"to_address,omitempty"`
}

type Company struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// PlatformConfig is the handful of globally tunable values.
type PlatformConfig struct {
	ID              int64   `json:"id"`
	MaxRideDistance float64 `json:"maxRideDistance"`
	CommissionRate  float64 `json:"commissionRate"`
	SupportEmail    string  `json:"supportEmail"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

type RideStats struct {
	TotalRides     int     `json:"totalRides"`
	ActiveRides    int     `json:"activeRides"`
	CompletedRides int     `json:"completedRides"`
	CancelledRides int     `json:"cancelledRides"`
	DisputedRides  int     `json:"disputedRides"`
	AverageSeats   float64 `json:"averageSeats"`
}

type DashboardStats struct {
	TotalUsers           int       `json:"totalUsers"`
	ActiveRides          int       `json:"activeRides"`
	PendingVerifications int       `json:"pendingVerifications"`
	Reports              int       `json:"reports"`
	RideStats            RideStats `json:"rideStats"`
}

type PaymentStats struct {
	Period               string  `json:"period"`
	TotalPayments        int     `json:"totalPayments"`
	SuccessfulPayments   int     `json:"successfulPayments"`
	PendingPayments      int     `json:"pendingPayments"`
	FailedPayments       int     `json:"failedPayments"`
	RefundedPayments     int     `json:"refundedPayments"`
	ExpiredPayments      int     `json:"expiredPayments"`
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalPaidOut         float64 `json:"totalPaidOut"`
	PlatformRevenue      float64 `json:"platformRevenue"`
	AveragePaymentAmount float64 `json:"averagePaymentAmount"`
}

type SystemHealth struct {
	Database       string `json:"database"`
	MapsAPI        string `json:"gebeta_maps_api"`
	PaymentGateway string `json:"telebirr_payment_gateway"`
	Timestamp      string `json:"timestamp"`
}
