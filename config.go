package workflow

import (
	"encoding/json"
	"fmt"
)

// Config is the kind-specific configuration payload of a node. Exactly one
// concrete shape exists per kind; unknown kinds carry an OpaqueConfig.
type Config interface {
	configKind()
}

// TaskConfig configures a task node.
type TaskConfig struct {
	TaskType    string `json:"task_type"`
	Description string `json:"description"`
	Timeout     int    `json:"timeout"`
}

// Condition is the predicate evaluated by a decision node.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// DecisionConfig configures a decision node.
type DecisionConfig struct {
	Condition Condition `json:"condition"`
}

// ApprovalConfig configures an approval node.
type ApprovalConfig struct {
	ApproverID  string         `json:"approver_id"`
	RequestData map[string]any `json:"request_data"`
	Timeout     int            `json:"timeout"`
}

// NotificationConfig configures a notification node.
type NotificationConfig struct {
	Type       string   `json:"type"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	Message    string   `json:"message"`
}

// IntegrationConfig configures an outbound integration call.
type IntegrationConfig struct {
	IntegrationID string         `json:"integration_id"`
	Method        string         `json:"method"`
	Endpoint      string         `json:"endpoint"`
	Payload       map[string]any `json:"payload"`
}

// DelayConfig configures a delay node.
type DelayConfig struct {
	DelaySeconds int `json:"delay_seconds"`
}

// EmptyConfig is the config of start and end nodes.
type EmptyConfig struct{}

// OpaqueConfig carries the config of a node kind this version doesn't know.
// It round-trips unchanged so unrecognized nodes are never silently dropped.
type OpaqueConfig map[string]any

func (TaskConfig) configKind()         {}
func (DecisionConfig) configKind()     {}
func (ApprovalConfig) configKind()     {}
func (NotificationConfig) configKind() {}
func (IntegrationConfig) configKind()  {}
func (DelayConfig) configKind()        {}
func (EmptyConfig) configKind()        {}
func (OpaqueConfig) configKind()       {}

// DefaultConfig returns the default configuration payload for a node kind.
// Pure and deterministic; unknown kinds get an empty OpaqueConfig.
func DefaultConfig(kind NodeKind) Config {
	switch kind {
	case KindTask:
		return TaskConfig{TaskType: "custom", Description: "", Timeout: 300}
	case KindDecision:
		return DecisionConfig{Condition: Condition{Field: "", Operator: "equals", Value: ""}}
	case KindApproval:
		return ApprovalConfig{ApproverID: "", RequestData: map[string]any{}, Timeout: 86400}
	case KindNotification:
		return NotificationConfig{Type: "email", Recipients: []string{}, Subject: "", Message: ""}
	case KindIntegration:
		return IntegrationConfig{IntegrationID: "", Method: "GET", Endpoint: "", Payload: map[string]any{}}
	case KindDelay:
		return DelayConfig{DelaySeconds: 60}
	case KindStart, KindEnd:
		return EmptyConfig{}
	default:
		return OpaqueConfig{}
	}
}

// decodeConfig parses a raw config payload into the concrete shape for kind.
func decodeConfig(kind NodeKind, raw json.RawMessage) (Config, error) {
	if len(raw) == 0 {
		return DefaultConfig(kind), nil
	}

	switch kind {
	case KindTask:
		var c TaskConfig
		return decodeInto(kind, raw, &c)
	case KindDecision:
		var c DecisionConfig
		return decodeInto(kind, raw, &c)
	case KindApproval:
		var c ApprovalConfig
		return decodeInto(kind, raw, &c)
	case KindNotification:
		var c NotificationConfig
		return decodeInto(kind, raw, &c)
	case KindIntegration:
		var c IntegrationConfig
		return decodeInto(kind, raw, &c)
	case KindDelay:
		var c DelayConfig
		return decodeInto(kind, raw, &c)
	case KindStart, KindEnd:
		var c EmptyConfig
		return decodeInto(kind, raw, &c)
	default:
		var c OpaqueConfig
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("workflow: decode %s config: %w", kind, err)
		}
		if c == nil {
			c = OpaqueConfig{}
		}
		return c, nil
	}
}

// decodeInto unmarshals raw into the pointed-to config and returns its value.
func decodeInto[T Config](kind NodeKind, raw json.RawMessage, c *T) (Config, error) {
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("workflow: decode %s config: %w", kind, err)
	}
	return *c, nil
}
