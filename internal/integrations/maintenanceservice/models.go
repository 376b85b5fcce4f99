package maintenanceservice

// ResourceStatus статус ресурса по данным сервиса обслуживания
type ResourceStatus string

const (
	StatusAvailable   ResourceStatus = "available"
	StatusMaintenance ResourceStatus = "maintenance"
	StatusRetired     ResourceStatus = "retired"
)

// statusResponse модель ответа сервиса обслуживания
type statusResponse struct {
	ResourceID int64          `json:"resource_id"`
	Status     ResourceStatus `json:"status"`
}
