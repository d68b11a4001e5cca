package kube

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the kind of Kubernetes workload as it appears in Polaris results.
type Kind string

const (
	KindPod         Kind = "Pod"
	KindReplicaSet  Kind = "ReplicaSet"
	KindDeployment  Kind = "Deployment"
	KindStatefulSet Kind = "StatefulSet"
	KindDaemonSet   Kind = "DaemonSet"
	KindJob         Kind = "Job"
	KindCronJob     Kind = "CronJob"
)

// KindFromString resolves the kind from a resource name or one of its
// shortcuts, e.g. deployments.apps, deploy or Deployment.
func KindFromString(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "pods", "pod", "po":
		return KindPod, nil
	case "replicasets.apps", "replicasets", "replicaset", "rs":
		return KindReplicaSet, nil
	case "deployments.apps", "deployments", "deployment", "deploy":
		return KindDeployment, nil
	case "statefulsets.apps", "statefulsets", "statefulset", "sts":
		return KindStatefulSet, nil
	case "daemonsets.apps", "daemonsets", "daemonset", "ds":
		return KindDaemonSet, nil
	case "cronjobs.batch", "cronjob.batch", "cronjobs", "cronjob", "cj":
		return KindCronJob, nil
	case "jobs.batch", "job.batch", "jobs", "job":
		return KindJob, nil
	}
	return "", fmt.Errorf("unrecognized workload: %s", s)
}

type Workload struct {
	Namespace string
	Kind      Kind
	Name      string
}

func (w Workload) String() string {
	return fmt.Sprintf("%s/%s", w.Kind, w.Name)
}

// WorkloadFromArgs parses TYPE/NAME. A bare NAME refers to a Deployment.
func WorkloadFromArgs(namespace string, args []string) (workload Workload, err error) {
	if len(args) < 1 {
		err = errors.New("required workload kind and name not specified")
		return
	}

	parts := strings.SplitN(args[0], "/", 2)
	if len(parts) == 1 {
		workload = Workload{
			Namespace: namespace,
			Kind:      KindDeployment,
			Name:      parts[0],
		}
		return
	}
	kind, err := KindFromString(parts[0])
	if err != nil {
		return
	}
	if parts[1] == "" {
		err = errors.New("required workload name is blank")
		return
	}
	workload = Workload{
		Namespace: namespace,
		Kind:      kind,
		Name:      parts[1],
	}
	return
}
