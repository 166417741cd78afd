// Package consul registers this service with the local consul agent so the
// API gateway can discover it.
package consul

import (
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
)

func NewClient() (*consulapi.Client, error) {
	client, err := consulapi.NewClient(consulapi.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}
	return client, nil
}

func RegisterService(client *consulapi.Client, serviceID, serviceName, address string, port int) error {
	registration := &consulapi.AgentServiceRegistration{
		ID:      serviceID,
		Name:    serviceName,
		Address: address,
		Port:    port,
		Check: &consulapi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/ping", address, port),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service with consul: %w", err)
	}
	return nil
}

func DeregisterService(client *consulapi.Client, serviceID string) error {
	if err := client.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("failed to deregister service from consul: %w", err)
	}
	return nil
}

// GetServiceAddress resolves a healthy instance of a registered service.
func GetServiceAddress(client *consulapi.Client, serviceName string) (string, int, error) {
	services, _, err := client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to query consul for %s: %w", serviceName, err)
	}
	if len(services) == 0 {
		return "", 0, fmt.Errorf("no healthy instances of %s", serviceName)
	}
	svc := services[0].Service
	address := svc.Address
	if address == "" {
		address = services[0].Node.Address
	}
	return address, svc.Port, nil
}
