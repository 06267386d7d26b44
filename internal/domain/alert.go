package domain

// AlertLevel clasifica las alertas emitidas por el gate de riesgo.
type AlertLevel string

const (
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// Alert es una alerta de riesgo con su razón legible.
type Alert struct {
	Level  AlertLevel
	Reason string
}
