package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/infra"

	"github.com/rs/zerolog/log"
)

const expiraImagen = 15 * time.Minute

// guardarImagen moves a data-URI image into the blob store and returns the
// reference to persist. Anything else (plain URLs, an existing reference, no
// store configured) is kept as sent.
func guardarImagen(ctx context.Context, blob infra.BlobStore, registroID string, imagen *string) (*string, error) {
	if blob == nil || imagen == nil || !strings.HasPrefix(*imagen, "data:") {
		return imagen, nil
	}
	cabecera, datos, ok := strings.Cut(strings.TrimPrefix(*imagen, "data:"), ",")
	if !ok || !strings.HasSuffix(cabecera, ";base64") {
		return imagen, nil
	}
	contenido, err := base64.StdEncoding.DecodeString(datos)
	if err != nil {
		return nil, err
	}
	contentType := strings.TrimSuffix(cabecera, ";base64")
	ext := "bin"
	if _, sub, ok := strings.Cut(contentType, "/"); ok && sub != "" {
		ext = sub
	}
	ref, err := blob.Put(ctx, "registros/"+registroID+"."+ext, contenido, contentType)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// imagenSubida reports whether guardarImagen uploaded the original value.
func imagenSubida(original, guardada *string) bool {
	return original != nil && guardada != nil && *original != *guardada && infra.EsReferenciaBlob(*guardada)
}

// descartarImagenes removes uploads whose records were never stored.
// Failures are only logged.
func descartarImagenes(ctx context.Context, blob infra.BlobStore, refs []string) {
	if blob == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for _, ref := range refs {
		if err := blob.Delete(ctx, ref); err != nil {
			log.Warn().Err(err).Str("ref", ref).Msg("imagen: no se pudo eliminar subida huerfana")
		}
	}
}

// urlImagen swaps a blob reference for a presigned URL. On failure the raw
// reference is returned.
func urlImagen(ctx context.Context, blob infra.BlobStore, imagen *string) *string {
	if blob == nil || imagen == nil || !infra.EsReferenciaBlob(*imagen) {
		return imagen
	}
	url, err := blob.PresignURL(ctx, *imagen, expiraImagen)
	if err != nil {
		log.Warn().Err(err).Str("ref", *imagen).Msg("imagen: no se pudo firmar URL")
		return imagen
	}
	return &url
}
