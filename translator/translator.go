// Package translator lazily starts the shader translator shared by every GL program.
package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	once       sync.Once
	translator *gst.ShaderTranslator
	initErr    error
)

// GetTranslator returns the process-wide translator, starting it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
		if initErr != nil {
			initErr = fmt.Errorf("start shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Fragment translates a WebGL2 fragment shader for the host GL. The returned map
// resolves source uniform names to the names used in the translated code.
func Fragment(src string, gles bool) (string, map[string]string, error) {
	t, err := GetTranslator()
	if err != nil {
		return "", nil, err
	}
	format := gst.OutputFormatGLSL410
	if gles {
		format = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(src, "fragment", gst.ShaderSpecWebGL2, format)
	if err != nil {
		return "", nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return out.Code, names, nil
}
