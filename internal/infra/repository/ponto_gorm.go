package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/models"
)

type PontoGormRepository struct {
	db *gorm.DB
}

func NewPontoGormRepository(db *gorm.DB) *PontoGormRepository {
	return &PontoGormRepository{db: db}
}

// --------------------------------------------------
// Funcionário
// --------------------------------------------------

// ValidarPin passa pela função segura do banco: o PIN nunca entra em
// cláusula montada aqui, e a resposta vazia significa PIN incorreto.
func (r *PontoGormRepository) ValidarPin(
	ctx context.Context,
	nome string,
	pin string,
) (*models.Funcionario, error) {

	var funcs []models.Funcionario
	if err := r.db.WithContext(ctx).
		Raw(`SELECT * FROM validar_pin_funcionario(?, ?)`, nome, pin).
		Scan(&funcs).Error; err != nil {
		return nil, err
	}

	if len(funcs) == 0 {
		return nil, nil
	}
	return &funcs[0], nil
}

func (r *PontoGormRepository) ListarFuncionariosAtivos(
	ctx context.Context,
) ([]models.Funcionario, error) {

	var funcs []models.Funcionario
	if err := r.db.WithContext(ctx).
		Where("ativo = ? AND role = ?", true, "funcionario").
		Order("nome ASC").
		Find(&funcs).Error; err != nil {
		return nil, err
	}
	return funcs, nil
}

// --------------------------------------------------
// Registro (turno aberto)
// --------------------------------------------------

func (r *PontoGormRepository) BuscarRegistroAberto(
	ctx context.Context,
	funcionarioID uuid.UUID,
) (*models.RegistroPonto, error) {

	var regs []models.RegistroPonto
	if err := r.db.WithContext(ctx).
		Where("funcionario_id = ? AND saida IS NULL", funcionarioID).
		Order("entrada DESC").
		Limit(1).
		Find(&regs).Error; err != nil {
		return nil, err
	}

	if len(regs) == 0 {
		return nil, nil
	}
	return &regs[0], nil
}

// --------------------------------------------------
// Registro (escritas)
// --------------------------------------------------

func (r *PontoGormRepository) CriarRegistro(
	ctx context.Context,
	reg *models.RegistroPonto,
) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *PontoGormRepository) FecharRegistroPorID(
	ctx context.Context,
	registroID uuid.UUID,
	saida time.Time,
	totalHoras float64,
) error {
	return r.db.WithContext(ctx).
		Model(&models.RegistroPonto{}).
		Where("id = ?", registroID).
		Updates(map[string]any{
			"saida":       saida,
			"total_horas": totalHoras,
		}).Error
}

func (r *PontoGormRepository) SalvarRegistro(
	ctx context.Context,
	reg *models.RegistroPonto,
) error {
	return r.db.WithContext(ctx).Save(reg).Error
}

// --------------------------------------------------
// Registro (leituras)
// --------------------------------------------------

func (r *PontoGormRepository) BuscarRegistroPorID(
	ctx context.Context,
	registroID uuid.UUID,
) (*models.RegistroPonto, error) {

	var regs []models.RegistroPonto
	if err := r.db.WithContext(ctx).
		Where("id = ?", registroID).
		Limit(1).
		Find(&regs).Error; err != nil {
		return nil, err
	}

	if len(regs) == 0 {
		return nil, nil
	}
	return &regs[0], nil
}

func (r *PontoGormRepository) BuscarUltimoRegistro(
	ctx context.Context,
	funcionarioID uuid.UUID,
) (*models.RegistroPonto, error) {

	var regs []models.RegistroPonto
	if err := r.db.WithContext(ctx).
		Where("funcionario_id = ?", funcionarioID).
		Order("entrada DESC").
		Limit(1).
		Find(&regs).Error; err != nil {
		return nil, err
	}

	if len(regs) == 0 {
		return nil, nil
	}
	return &regs[0], nil
}

// --------------------------------------------------
// Conectividade
// --------------------------------------------------

func (r *PontoGormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Compile-time check
var _ domain.Repository = (*PontoGormRepository)(nil)
