package numbering

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/sequence"
	"github.com/jhoicas/PuntoVenta-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLast(code string) LastCodeFunc {
	return func(context.Context) (string, error) { return code, nil }
}

func TestNext_SinDocumentosEmpiezaEnUno(t *testing.T) {
	seqs := memory.NewStore().Repos().Sequences
	code, err := Next(context.Background(), seqs, "c", sequence.PrefixSale, fixedLast(""))
	require.NoError(t, err)
	assert.Equal(t, "SAL-0001", code)
}

func TestNext_SiembraDesdeUltimoCodigo(t *testing.T) {
	seqs := memory.NewStore().Repos().Sequences
	ctx := context.Background()

	code, err := Next(ctx, seqs, "c", sequence.PrefixSale, fixedLast("SAL-0042"))
	require.NoError(t, err)
	assert.Equal(t, "SAL-0043", code)

	// Ya sembrado: el último código no se vuelve a consultar.
	code, err = Next(ctx, seqs, "c", sequence.PrefixSale, func(context.Context) (string, error) {
		t.Fatal("lastCode no debe llamarse con el contador sembrado")
		return "", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "SAL-0044", code)

	last, seeded, err := seqs.Lock(ctx, "c", sequence.PrefixSale)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.EqualValues(t, 44, last)
}

func TestNext_PrefijosYEmpresasIndependientes(t *testing.T) {
	seqs := memory.NewStore().Repos().Sequences
	ctx := context.Background()

	_, err := Next(ctx, seqs, "c", sequence.PrefixSale, fixedLast("SAL-0009"))
	require.NoError(t, err)

	code, err := Next(ctx, seqs, "c", sequence.PrefixPurchase, fixedLast(""))
	require.NoError(t, err)
	assert.Equal(t, "PUR-0001", code)

	code, err = Next(ctx, seqs, "otra", sequence.PrefixSale, fixedLast(""))
	require.NoError(t, err)
	assert.Equal(t, "SAL-0001", code)
}

func TestNext_UltimoCodigoSinNumero(t *testing.T) {
	seqs := memory.NewStore().Repos().Sequences
	_, err := Next(context.Background(), seqs, "c", sequence.PrefixSale, fixedLast("SAL-X"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNext_ErrorAlConsultarUltimoCodigo(t *testing.T) {
	seqs := memory.NewStore().Repos().Sequences
	boom := errors.New("db caída")
	_, err := Next(context.Background(), seqs, "c", sequence.PrefixSale, func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}
