package httperr

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type entry struct {
	status  int
	message string
}

// table maps business codes to the HTTP status and the text shown to the user.
var table = map[string]entry{
	// -------- Sessão --------
	"missing_authorization_header": {http.StatusUnauthorized, "Você precisa estar logado."},
	"invalid_authorization_header": {http.StatusUnauthorized, "Sessão inválida."},
	"invalid_credentials":          {http.StatusUnauthorized, "Email ou senha inválidos"},
	"invalid_token":                {http.StatusUnauthorized, "Sessão inválida. Faça login novamente."},
	"invalid_token_payload":        {http.StatusUnauthorized, "Sessão inválida. Faça login novamente."},
	"token_expired":                {http.StatusUnauthorized, "Sessão expirada. Faça login novamente."},
	"token_revoked":                {http.StatusUnauthorized, "Sessão encerrada. Faça login novamente."},
	"login_required":               {http.StatusUnauthorized, "Você precisa estar logado para fazer um agendamento"},
	"staff_only":                   {http.StatusForbidden, "Acesso restrito à equipe da barbearia."},
	"admins_only":                  {http.StatusForbidden, "Apenas administradores podem fazer isso."},

	// -------- Conta --------
	"email_already_registered": {http.StatusConflict, "Este email já está cadastrado"},
	"invalid_email_domain":     {http.StatusBadRequest, "Domínio de email inválido"},
	"invalid_reset_token":      {http.StatusBadRequest, "Link de recuperação inválido ou expirado"},
	"password_too_short":       {http.StatusBadRequest, "A senha deve ter no mínimo 6 caracteres"},
	"password_mismatch":        {http.StatusBadRequest, "As senhas não coincidem"},
	"user_not_found":           {http.StatusNotFound, "Usuário não encontrado."},
	"invalid_role":             {http.StatusBadRequest, "Papel inválido. Use admin ou barbeiro."},
	"cannot_demote_self":       {http.StatusBadRequest, "Você não pode remover seu próprio acesso de administrador."},
	"cannot_delete_self":       {http.StatusBadRequest, "Você não pode excluir sua própria conta."},

	// -------- Catálogo --------
	"service_not_found":   {http.StatusNotFound, "Serviço não encontrado."},
	"service_inactive":    {http.StatusBadRequest, "Este serviço não está disponível."},
	"time_slot_not_found": {http.StatusNotFound, "Horário não encontrado."},
	"time_slot_exists":    {http.StatusConflict, "Este horário já está cadastrado."},
	"invalid_time":        {http.StatusBadRequest, "Horário inválido. Use o formato HH:MM."},
	"invalid_name":        {http.StatusBadRequest, "Nome deve conter apenas letras"},
	"invalid_price":       {http.StatusBadRequest, "Preço inválido."},
	"invalid_duration":    {http.StatusBadRequest, "Duração inválida."},
	"invalid_image":       {http.StatusBadRequest, "Imagem inválida. Envie um arquivo JPG ou PNG."},
	"image_too_large":     {http.StatusRequestEntityTooLarge, "Imagem muito grande. Máximo de 5MB."},
	"media_disabled":      {http.StatusServiceUnavailable, "Upload de imagens indisponível."},

	// -------- Agendamento --------
	"invalid_date":         {http.StatusBadRequest, "Data inválida"},
	"invalid_date_or_time": {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_period":       {http.StatusBadRequest, "Período inválido."},
	"invalid_phone":        {http.StatusBadRequest, "Telefone inválido"},
	"past_date":            {http.StatusBadRequest, "Não é possível agendar em uma data passada."},
	"closed_day":           {http.StatusBadRequest, "A barbearia não abre neste dia."},
	"time_unavailable":     {http.StatusBadRequest, "Este horário não está disponível."},
	"time_elapsed":         {http.StatusBadRequest, "Este horário já passou."},
	"slot_taken":           {http.StatusConflict, "Este horário já foi reservado. Escolha outro."},
	"booking_not_found":    {http.StatusNotFound, "Agendamento não encontrado."},
	"draft_not_found":      {http.StatusNotFound, "Agendamento em andamento não encontrado ou expirado."},
	"invalid_transition":   {http.StatusConflict, "Conclua as etapas anteriores do agendamento."},
}

// Lookup returns the status and message registered for code.
func Lookup(code string) (int, string, bool) {
	e, ok := table[code]
	return e.status, e.message, ok
}

// Respond writes err using the code table. Anything that is not a known
// business error is logged and answered with a 500 carrying fallback.
func Respond(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := Code(err); ok {
		if status, message, found := Lookup(code); found {
			Write(c, status, code, message)
			return
		}
	}

	log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
	Internal(c, fallbackCode, fallbackMessage)
}

// Abort is Respond for middleware.
func Abort(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	Respond(c, err, fallbackCode, fallbackMessage)
	c.Abort()
}
