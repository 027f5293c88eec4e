package packagecatalog

// TrainingPackage модель тарифного пакета из каталога
type TrainingPackage struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	SessionsTotal  int     `json:"sessions_total"`
	ValidityMonths int     `json:"validity_months"`
	Price          float64 `json:"price"`
	IsActive       bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога пакетов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
