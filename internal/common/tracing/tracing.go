package tracing

import (
	"fmt"
	"io"

	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitTracer 按配置初始化 Jaeger tracer 并设为全局。
// sampler 取 0.0-1.0 的常量采样率；endpoint 为 agent 地址（host:port）。
func InitTracer(serviceName string, jc config.JaegerConfig) (opentracing.Tracer, io.Closer, error) {
	if jc.Endpoint == "" {
		return nil, nil, fmt.Errorf("jaeger endpoint is empty")
	}

	cfg := &jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: jc.Sampler,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: jc.Endpoint,
		},
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.NullLogger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init jaeger tracer: %w", err)
	}

	opentracing.SetGlobalTracer(tracer)
	return tracer, closer, nil
}
