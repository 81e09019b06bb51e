package glw

import (
	"fmt"
	"log/slog"
	"strings"
)

// maxQueuedErrors stops CheckError from spinning on a lost context, where
// some drivers keep returning the same code.
const maxQueuedErrors = 16

// ErrorName returns the GL_* name of a glGetError code.
func ErrorName(code uint32) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	case STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("GL_ERROR_0x%X", code)
}

// CheckError drains the driver error queue. It returns nil when the queue
// was empty and a KindDriver error listing every code otherwise.
func CheckError(api API, op string) error {
	var names []string
	for i := 0; i < maxQueuedErrors; i++ {
		code := api.GetError()
		if code == NO_ERROR {
			break
		}
		names = append(names, ErrorName(code))
	}
	if len(names) == 0 {
		return nil
	}
	log := strings.Join(names, ",")
	Logger().Warn("gl error", slog.String("op", op), slog.String("codes", log))
	return &Error{Kind: KindDriver, Op: op, Log: log}
}

// DriverInfo identifies the driver behind an API.
type DriverInfo struct {
	Vendor          string
	Renderer        string
	Version         string
	ShadingLanguage string
}

func QueryDriverInfo(api API) DriverInfo {
	return DriverInfo{
		Vendor:          api.GetString(VENDOR),
		Renderer:        api.GetString(RENDERER),
		Version:         api.GetString(VERSION),
		ShadingLanguage: api.GetString(SHADING_LANGUAGE_VERSION),
	}
}

// LogValue lets DriverInfo be passed straight to a slog call.
func (i DriverInfo) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("vendor", i.Vendor),
		slog.String("renderer", i.Renderer),
		slog.String("version", i.Version),
		slog.String("glsl", i.ShadingLanguage),
	)
}
