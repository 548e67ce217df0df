package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUbicacion(t *testing.T) {
	casos := []struct {
		entrada string
		punto   orb.Point
		ok      bool
	}{
		{"-33.123, -70.456", orb.Point{-70.456, -33.123}, true},
		{"  0,0 ", orb.Point{0, 0}, true},
		{"90, 180", orb.Point{180, 90}, true},
		{"91, 10", orb.Point{}, false},
		{"10, -181", orb.Point{}, false},
		{"-33.1", orb.Point{}, false},
		{"a, b", orb.Point{}, false},
		{"1, 2, 3", orb.Point{}, false},
		{"NaN, 1", orb.Point{}, false},
	}
	for _, c := range casos {
		t.Run(c.entrada, func(t *testing.T) {
			p, err := ParseUbicacion(c.entrada)
			if !c.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.punto, p)
		})
	}
}

func TestLimpiarUbicacion(t *testing.T) {
	v, err := limpiarUbicacion(nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	blanco := "   "
	v, err = limpiarUbicacion(&blanco)
	assert.NoError(t, err)
	assert.Nil(t, v)

	valida := " -33.5, -70.5 "
	v, err = limpiarUbicacion(&valida)
	require.NoError(t, err)
	assert.Equal(t, "-33.5, -70.5", *v)
}

func TestHilerasNumeradas_SaltaOcupadas(t *testing.T) {
	ahora := time.Now()
	hileras := hilerasNumeradas(7, 1, 3, conjunto([]string{"Hilera 2"}), ahora)

	require.Len(t, hileras, 3)
	nombres := []string{hileras[0].Hilera, hileras[1].Hilera, hileras[2].Hilera}
	assert.Equal(t, []string{"Hilera 1", "Hilera 3", "Hilera 4"}, nombres)
	assert.Equal(t, int64(7), hileras[2].IDCuartel)
}

func TestPlantasNumeradas(t *testing.T) {
	plantas := plantasNumeradas(3, 4, time.Now())
	require.Len(t, plantas, 4)
	assert.Equal(t, "1", plantas[0].Planta)
	assert.Equal(t, "4", plantas[3].Planta)
	assert.Empty(t, plantasNumeradas(3, 0, time.Now()))
}

func TestCeldaEntera(t *testing.T) {
	fila := []string{"42", " 3.0 ", "2.7", "99999999999999999999", "1e3", "abc", ""}

	assert.Equal(t, int64(42), *celdaInt64(fila, 0))
	assert.Equal(t, int64(3), *celdaInt64(fila, 1))
	assert.Nil(t, celdaInt64(fila, 2))
	assert.Nil(t, celdaInt64(fila, 3))
	assert.Equal(t, int64(1000), *celdaInt64(fila, 4))
	assert.Nil(t, celdaInt64(fila, 5))
	assert.Nil(t, celdaInt64(fila, 6))
	assert.Nil(t, celdaInt64(fila, 9))

	assert.Equal(t, 3, *celdaInt(fila, 1))
	assert.Nil(t, celdaInt(fila, 2))
}

type blobFalso struct {
	claves     []string
	tipos      []string
	borradas   []string
	errPresign error
	errDelete  error
}

func (b *blobFalso) Put(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	b.claves = append(b.claves, key)
	b.tipos = append(b.tipos, contentType)
	return "s3://fotos/" + key, nil
}

func (b *blobFalso) PresignURL(_ context.Context, ref string, _ time.Duration) (string, error) {
	if b.errPresign != nil {
		return "", b.errPresign
	}
	return "https://firmada/" + ref, nil
}

func (b *blobFalso) Delete(_ context.Context, ref string) error {
	b.borradas = append(b.borradas, ref)
	return b.errDelete
}

func TestDescartarImagenes(t *testing.T) {
	dataURI := "data:image/png;base64,aGVsbG8="
	ref := "s3://fotos/registros/r-1.png"
	externa := "https://cdn/foto.jpg"

	assert.True(t, imagenSubida(&dataURI, &ref))
	assert.False(t, imagenSubida(&externa, &externa))
	assert.False(t, imagenSubida(nil, nil))
	assert.False(t, imagenSubida(&dataURI, &dataURI))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	blob := &blobFalso{errDelete: errors.New("sin red")}
	descartarImagenes(ctx, blob, []string{ref, "s3://fotos/registros/r-2.png"})
	assert.Equal(t, []string{ref, "s3://fotos/registros/r-2.png"}, blob.borradas)

	descartarImagenes(ctx, nil, []string{ref})
}

func TestGuardarImagen(t *testing.T) {
	ctx := context.Background()
	blob := &blobFalso{}

	dataURI := "data:image/png;base64,aGVsbG8="
	ref, err := guardarImagen(ctx, blob, "r-1", &dataURI)
	require.NoError(t, err)
	assert.Equal(t, "s3://fotos/registros/r-1.png", *ref)
	assert.Equal(t, []string{"image/png"}, blob.tipos)

	url := "https://cdn/foto.jpg"
	ref, err = guardarImagen(ctx, blob, "r-2", &url)
	require.NoError(t, err)
	assert.Equal(t, url, *ref)

	ref, err = guardarImagen(ctx, nil, "r-3", &dataURI)
	require.NoError(t, err)
	assert.Equal(t, dataURI, *ref)

	roto := "data:image/png;base64,%%%"
	_, err = guardarImagen(ctx, blob, "r-4", &roto)
	assert.Error(t, err)
	assert.Len(t, blob.claves, 1)
}

func TestURLImagen(t *testing.T) {
	ctx := context.Background()
	ref := "s3://fotos/registros/r-1.png"

	assert.Equal(t, "https://firmada/"+ref, *urlImagen(ctx, &blobFalso{}, &ref))

	fallo := &blobFalso{errPresign: errors.New("sin red")}
	assert.Equal(t, ref, *urlImagen(ctx, fallo, &ref))

	externa := "https://cdn/foto.jpg"
	assert.Equal(t, externa, *urlImagen(ctx, &blobFalso{}, &externa))
	assert.Nil(t, urlImagen(ctx, &blobFalso{}, nil))
}
