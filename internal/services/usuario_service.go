package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/auth"
	"github.com/joshua-takyi/agenda/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// UsuarioInput is the body of user create and update requests. Empty
// fields count as absent; a contactos of [] is present.
type UsuarioInput struct {
	Email     string   `json:"email"`
	Nombre    string   `json:"nombre"`
	Contactos []string `json:"contactos"`
}

type UsuarioService struct {
	usuarioRepo models.UsuarioRepo
}

func NewUsuarioService(usuarioRepo models.UsuarioRepo) *UsuarioService {
	return &UsuarioService{
		usuarioRepo: usuarioRepo,
	}
}

func (us *UsuarioService) ListUsuarios(ctx context.Context, values url.Values) ([]*models.Usuario, error) {
	q, err := models.UsuarioQuerySpec.Build(values)
	if err != nil {
		return nil, err
	}
	return us.usuarioRepo.ListUsuarios(ctx, q)
}

func (us *UsuarioService) GetUsuario(ctx context.Context, id string) (*models.Usuario, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.BadRequest("id is required")
	}
	return us.usuarioRepo.GetUsuarioByID(ctx, id)
}

func (us *UsuarioService) CreateUsuario(ctx context.Context, in UsuarioInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Nombre = strings.TrimSpace(in.Nombre)
	if in.Email == "" || in.Nombre == "" {
		return "", apperrors.BadRequest("email and nombre are required")
	}
	if err := validateEmails(append([]string{in.Email}, in.Contactos...)...); err != nil {
		return "", err
	}

	usuario := &models.Usuario{
		Email:     in.Email,
		Nombre:    in.Nombre,
		Contactos: in.Contactos,
	}
	if usuario.Contactos == nil {
		usuario.Contactos = []string{}
	}

	id, err := us.usuarioRepo.CreateUsuario(ctx, usuario)
	if err != nil {
		return "", fmt.Errorf("failed to create usuario: %w", err)
	}
	return id, nil
}

func (us *UsuarioService) UpdateUsuario(ctx context.Context, id string, in UsuarioInput) (*models.UpdateResult, error) {
	set := bson.M{}
	if email := strings.TrimSpace(in.Email); email != "" {
		if err := validateEmails(email); err != nil {
			return nil, err
		}
		set["email"] = email
	}
	if nombre := strings.TrimSpace(in.Nombre); nombre != "" {
		set["nombre"] = nombre
	}
	if in.Contactos != nil {
		if err := validateEmails(in.Contactos...); err != nil {
			return nil, err
		}
		set["contactos"] = in.Contactos
	}
	if len(set) == 0 {
		return nil, apperrors.BadRequest("nothing to update: send email, nombre or contactos")
	}

	return matched(us.usuarioRepo.UpdateUsuario(ctx, id, set))("usuario")
}

func (us *UsuarioService) DeleteUsuario(ctx context.Context, id string) (int64, error) {
	return us.usuarioRepo.DeleteUsuario(ctx, id)
}

func (us *UsuarioService) Contactos(ctx context.Context, id string) ([]string, error) {
	usuario, err := us.usuarioRepo.GetUsuarioByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usuario.Contactos == nil {
		return []string{}, nil
	}
	return usuario.Contactos, nil
}

func (us *UsuarioService) AddContacto(ctx context.Context, id, email string) (*models.UpdateResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	if err := validateEmails(email); err != nil {
		return nil, err
	}
	return matched(us.usuarioRepo.AddContacto(ctx, id, email))("usuario")
}

func (us *UsuarioService) RemoveContacto(ctx context.Context, id, email string) (*models.UpdateResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	return matched(us.usuarioRepo.RemoveContacto(ctx, id, email))("usuario")
}

// SearchContactos finds, among the contacts of the user with the given
// email, those whose nombre contains nombre (case-insensitive).
func (us *UsuarioService) SearchContactos(ctx context.Context, email, nombre string) ([]*models.Usuario, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	usuario, err := us.usuarioRepo.GetUsuarioByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(usuario.Contactos) == 0 {
		return []*models.Usuario{}, nil
	}
	return us.usuarioRepo.SearchContactos(ctx, usuario.Contactos, nombre)
}

// ResolveIdentity points a verified identity at the user document its
// email refers to.
func (us *UsuarioService) ResolveIdentity(ctx context.Context, identity *auth.Identity) error {
	if identity.Email == "" {
		return nil
	}
	usuario, err := us.usuarioRepo.GetUsuarioByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to resolve usuario: %w", err)
	}
	identity.UserID = usuario.ID.Hex()
	return nil
}
