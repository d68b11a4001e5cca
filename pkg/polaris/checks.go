package polaris

import (
	"sort"
)

// Status is the display status of a score or severity.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusNone    Status = ""
)

// ScoreStatus maps a score to the status used for labels and badges.
func ScoreStatus(score int) Status {
	switch {
	case score >= 80:
		return StatusSuccess
	case score >= 50:
		return StatusWarning
	default:
		return StatusError
	}
}

// SeverityStatus maps a check severity to a display status.
func SeverityStatus(severity Severity) Status {
	switch severity {
	case SeverityDanger:
		return StatusError
	case SeverityWarning:
		return StatusWarning
	default:
		return StatusNone
	}
}

var checkNames = map[string]string{
	// security
	"automountServiceAccountToken":   "Automount Service Account Token",
	"dangerousCapabilities":          "Dangerous Capabilities",
	"hostIPCSet":                     "Host IPC",
	"hostNetworkSet":                 "Host Network",
	"hostPIDSet":                     "Host PID",
	"hostPortSet":                    "Host Port",
	"insecureCapabilities":           "Insecure Capabilities",
	"linuxHardening":                 "Linux Hardening",
	"notReadOnlyRootFilesystem":      "Read-Only Root Filesystem",
	"privilegeEscalationAllowed":     "Privilege Escalation Allowed",
	"runAsPrivileged":                "Privileged Container",
	"runAsRootAllowed":               "Run As Root",
	"sensitiveConfigmapContent":      "Sensitive ConfigMap Content",
	"sensitiveContainerEnvVar":       "Sensitive Container Env Var",
	"missingNetworkPolicy":           "Missing Network Policy",
	"clusterrolePodExecAttach":       "ClusterRole Pod Exec/Attach",
	"rolePodExecAttach":              "Role Pod Exec/Attach",
	"clusterrolebindingClusterAdmin": "ClusterRoleBinding Cluster Admin",
	"rolebindingClusterAdminRole":    "RoleBinding Cluster Admin Role",
	// efficiency
	"cpuLimitsMissing":      "CPU Limits Missing",
	"cpuRequestsMissing":    "CPU Requests Missing",
	"memoryLimitsMissing":   "Memory Limits Missing",
	"memoryRequestsMissing": "Memory Requests Missing",
	// reliability
	"deploymentMissingReplicas":                "Deployment Missing Replicas",
	"livenessProbeMissing":                     "Liveness Probe Missing",
	"metadataAndNameMismatched":                "Metadata And Name Mismatched",
	"missingPodDisruptionBudget":               "Missing Pod Disruption Budget",
	"priorityClassNotSet":                      "Priority Class Not Set",
	"pullPolicyNotAlways":                      "Pull Policy Not Always",
	"readinessProbeMissing":                    "Readiness Probe Missing",
	"tagNotSpecified":                          "Image Tag Not Specified",
	"topologySpreadConstraint":                 "Topology Spread Constraint",
	"hpaMaxAvailability":                       "HPA Max Availability",
	"hpaMinAvailability":                       "HPA Min Availability",
	"pdbDisruptionsIsZero":                     "PDB Disruptions Is Zero",
	"pdbMinAvailableGreaterThanHPAMinReplicas": "PDB Min Available Greater Than HPA Min Replicas",
}

// CheckName returns the human readable label of a Polaris check. Unknown
// IDs are returned as is.
func CheckName(id string) string {
	if name, ok := checkNames[id]; ok {
		return name
	}
	return id
}

// FailingCheck is a distinct failing check of a single workload.
type FailingCheck struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Category string   `json:"category"`
}

// FailingChecks lists distinct failing pod and container checks of the
// given result, danger first. Ignored checks are left out. When several
// containers fail the same check the first occurrence is kept.
func FailingChecks(result Result) []FailingCheck {
	failures := make([]FailingCheck, 0)
	if result.PodResult == nil {
		return failures
	}
	seen := make(map[string]bool)
	add := func(set ResultSet) {
		for _, id := range sortedIDs(set) {
			msg := set[id]
			if msg.Success || msg.Severity == SeverityIgnore || seen[id] {
				continue
			}
			seen[id] = true
			failures = append(failures, FailingCheck{
				ID:       id,
				Name:     CheckName(id),
				Severity: msg.Severity,
				Message:  msg.Message,
				Category: msg.Category,
			})
		}
	}
	add(result.PodResult.Results)
	for _, container := range result.PodResult.ContainerResults {
		add(container.Results)
	}
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Severity == SeverityDanger && failures[j].Severity != SeverityDanger
	})
	return failures
}

// sortedIDs gives map iteration a stable order.
func sortedIDs(set ResultSet) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
