package interfaces

import (
	"net/http"
	"net/url"
	"strconv"
)

// ApplicationContext carries everything a controller needs for a single request
// without tying the controller to a specific http framework.
type ApplicationContext[T any] struct {
	Ctx        any
	Body       *T
	Keys       map[string]any
	Header     http.Header
	Param      map[string]string
	Query      url.Values
	DeviceID   string
	DeviceName string
	UserAgent  string
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	value, ok := ac.GetContextData(key).(string)
	if !ok {
		return ""
	}
	return value
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	return &value
}

func (ac *ApplicationContext[T]) GetStringParameter(key string) string {
	return ac.Param[key]
}

func (ac *ApplicationContext[T]) GetStringQuery(key string) string {
	if ac.Query == nil {
		return ""
	}
	return ac.Query.Get(key)
}

func (ac *ApplicationContext[T]) GetInt64Query(key string, fallback int64) int64 {
	raw := ac.GetStringQuery(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
