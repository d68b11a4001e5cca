package polaris

import (
	"encoding/json"
	"fmt"
	"io"
)

// Severity of a failed Polaris check.
type Severity string

const (
	SeverityIgnore  Severity = "ignore"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// AuditData is the root document served by the Polaris dashboard at
// results.json. It is never modified once decoded.
type AuditData struct {
	PolarisOutputVersion string      `json:"PolarisOutputVersion"`
	AuditTime            string      `json:"AuditTime"`
	SourceType           string      `json:"SourceType"`
	SourceName           string      `json:"SourceName"`
	DisplayName          string      `json:"DisplayName"`
	ClusterInfo          ClusterInfo `json:"ClusterInfo"`
	Results              []Result    `json:"Results"`
}

type ClusterInfo struct {
	Version     string `json:"Version"`
	Nodes       int    `json:"Nodes"`
	Pods        int    `json:"Pods"`
	Namespaces  int    `json:"Namespaces"`
	Controllers int    `json:"Controllers"`
}

// Result holds the checks of a single audited Kubernetes resource.
// Cluster-scoped resources have an empty Namespace.
type Result struct {
	Name        string     `json:"Name"`
	Namespace   string     `json:"Namespace"`
	Kind        string     `json:"Kind"`
	Results     ResultSet  `json:"Results"`
	PodResult   *PodResult `json:"PodResult,omitempty"`
	CreatedTime string     `json:"CreatedTime"`
}

// PodResult is only present for workload controllers.
type PodResult struct {
	Name             string            `json:"Name"`
	Results          ResultSet         `json:"Results"`
	ContainerResults []ContainerResult `json:"ContainerResults"`
}

type ContainerResult struct {
	Name    string    `json:"Name"`
	Results ResultSet `json:"Results"`
}

// ResultSet maps check IDs to their outcome.
type ResultSet map[string]ResultMessage

type ResultMessage struct {
	ID       string   `json:"ID"`
	Message  string   `json:"Message"`
	Details  []string `json:"Details"`
	Success  bool     `json:"Success"`
	Severity Severity `json:"Severity"`
	Category string   `json:"Category"`
}

// ReadAuditData decodes a single audit document from the specified reader.
func ReadAuditData(reader io.Reader) (AuditData, error) {
	var data AuditData
	err := json.NewDecoder(reader).Decode(&data)
	if err != nil {
		return AuditData{}, fmt.Errorf("decoding audit data: %w", err)
	}
	return data, nil
}
