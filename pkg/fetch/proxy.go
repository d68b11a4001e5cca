package fetch

import (
	"context"
	"errors"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/rest"
)

// ProxyRequester performs authenticated GET requests against paths served
// by the Kubernetes API server, such as service proxy paths.
type ProxyRequester interface {
	Request(ctx context.Context, path string) ([]byte, error)
}

// NewKubeProxyRequester constructs a ProxyRequester on top of a client-go
// REST client, typically clientset.CoreV1().RESTClient().
func NewKubeProxyRequester(client rest.Interface) ProxyRequester {
	return &kubeProxyRequester{
		client: client,
	}
}

type kubeProxyRequester struct {
	client rest.Interface
}

func (r *kubeProxyRequester) Request(ctx context.Context, path string) ([]byte, error) {
	body, err := r.client.Get().AbsPath(path).DoRaw(ctx)
	if err != nil {
		var apiStatus apierrors.APIStatus
		if errors.As(err, &apiStatus) && apiStatus.Status().Code != 0 {
			return nil, &StatusError{
				Status: int(apiStatus.Status().Code),
				Text:   err.Error(),
			}
		}
		return nil, err
	}
	return body, nil
}
