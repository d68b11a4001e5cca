package settings

import (
	"context"
	"fmt"
	"sync"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// Storage is a persistent string key-value store.
type Storage interface {
	// Get returns the value stored under key. The found flag is false if
	// nothing has been stored yet.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// NewConfigMapStorage constructs a Storage that keeps every key as an
// entry of a single ConfigMap. The ConfigMap is created on first write.
func NewConfigMapStorage(client kubernetes.Interface, namespace, name string) Storage {
	return &configMapStorage{
		client:    client,
		namespace: namespace,
		name:      name,
	}
}

type configMapStorage struct {
	client    kubernetes.Interface
	namespace string
	name      string
}

func (s *configMapStorage) Get(ctx context.Context, key string) (string, bool, error) {
	cm, err := s.client.CoreV1().ConfigMaps(s.namespace).Get(ctx, s.name, metav1.GetOptions{})
	if errors.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting configmap %s/%s: %w", s.namespace, s.name, err)
	}
	value, found := cm.Data[key]
	return value, found, nil
}

func (s *configMapStorage) Set(ctx context.Context, key, value string) error {
	configMaps := s.client.CoreV1().ConfigMaps(s.namespace)
	cm, err := configMaps.Get(ctx, s.name, metav1.GetOptions{})
	if errors.IsNotFound(err) {
		_, err = configMaps.Create(ctx, &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Namespace: s.namespace,
				Name:      s.name,
			},
			Data: map[string]string{
				key: value,
			},
		}, metav1.CreateOptions{})
		if err != nil {
			return fmt.Errorf("creating configmap %s/%s: %w", s.namespace, s.name, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("getting configmap %s/%s: %w", s.namespace, s.name, err)
	}
	cm = cm.DeepCopy()
	if cm.Data == nil {
		cm.Data = make(map[string]string)
	}
	cm.Data[key] = value
	_, err = configMaps.Update(ctx, cm, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("updating configmap %s/%s: %w", s.namespace, s.name, err)
	}
	return nil
}

// NewMemoryStorage constructs a Storage that does not outlive the process.
func NewMemoryStorage() Storage {
	return &memoryStorage{
		data: make(map[string]string),
	}
}

type memoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func (s *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, found := s.data[key]
	return value, found, nil
}

func (s *memoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
