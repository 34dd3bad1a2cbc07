package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventas-api/pkg/logger"
)

func TestNew_NivelConfigurado(t *testing.T) {
	log := logger.New(logger.Config{Env: "production", Level: "warn"})
	assert.Equal(t, zerolog.WarnLevel, log.Level())
}

// TestNew_NivelInvalidoUsaDefault un LOG_LEVEL inválido o vacío no debe tumbar
// el arranque: se degrada al nivel por defecto.
func TestNew_NivelInvalidoUsaDefault(t *testing.T) {
	for _, lvl := range []string{"", "verbose", "INFO "} {
		log := logger.New(logger.Config{Env: "production", Level: lvl})
		assert.Equal(t, logger.DefaultLevel, log.Level(), "nivel %q", lvl)
	}
}

func TestNop_DescartaTodo(t *testing.T) {
	log := logger.Nop()
	assert.Equal(t, zerolog.Disabled, log.Level())
	log.Error().Msg("no debe imprimirse ni fallar")
}
