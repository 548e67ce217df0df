package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest accepts the legacy field names as aliases.
type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Clave    string `json:"clave"`
	Password string `json:"password"`
}

// Login returns the first non-empty login identifier.
func (r LoginRequest) Login() string {
	for _, v := range []string{r.Usuario, r.Username, r.Email} {
		if v != "" {
			return v
		}
	}
	return ""
}

func (r LoginRequest) Secreto() string {
	if r.Clave != "" {
		return r.Clave
	}
	return r.Password
}

type CambiarClaveRequest struct {
	ClaveActual string `json:"clave_actual" validate:"required"`
	ClaveNueva  string `json:"clave_nueva"  validate:"required,min=4,max=72"`
}

type CambiarSucursalRequest struct {
	IDSucursal int64 `json:"id_sucursal" validate:"required,gt=0"`
}

type ActualizarPerfilRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=1,max=45"`
	ApellidoPaterno *string `json:"apellido_paterno" validate:"omitempty,min=1,max=45"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,max=45"`
	Correo          *string `json:"correo"           validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// LoginResponse keeps the flat shape existing clients read.
type LoginResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token,omitempty"`
	TokenType       string `json:"token_type"`
	ExpiresIn       int    `json:"expires_in"` // seconds
	Usuario         string `json:"usuario"`
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	IDSucursal      *int64 `json:"id_sucursal"`
	SucursalNombre  string `json:"sucursal_nombre"`
	IDRol           int    `json:"id_rol"`
	IDPerfil        int    `json:"id_perfil"`
}
