package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/VTekSistemas01/ponto-api/internal/config"
	"github.com/VTekSistemas01/ponto-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Funcionario{},
		&models.RegistroPonto{},
		&models.HistoricoAlteracao{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	criarFuncoes(db)
	seedAdmin(db, cfg)

	return db
}

// criarFuncoes instala as funções SQL que formam a superfície de RPC do
// banco. PIN e auditoria passam SEMPRE por elas, nunca por query montada
// na aplicação.
func criarFuncoes(db *gorm.DB) {

	db.Exec(`
        CREATE OR REPLACE FUNCTION validar_pin_funcionario(p_nome text, p_pin text)
        RETURNS SETOF funcionarios
        LANGUAGE sql
        SECURITY DEFINER
        AS $$
            SELECT *
            FROM funcionarios
            WHERE nome = p_nome
              AND pin = p_pin
              AND ativo = true
              AND role = 'funcionario'
            LIMIT 1;
        $$;
    `)

	// Ordem dos parâmetros alfabética — espelha a ordem em que o cliente
	// os envia (audit.Logger.Registrar).
	db.Exec(`
        CREATE OR REPLACE FUNCTION registrar_alteracao_admin(
            p_admin_nome     text,
            p_campo_alterado text,
            p_funcionario_id uuid,
            p_motivo         text,
            p_registro_id    uuid,
            p_tabela         text,
            p_valor_anterior text,
            p_valor_novo     text
        )
        RETURNS uuid
        LANGUAGE sql
        SECURITY DEFINER
        AS $$
            INSERT INTO historico_alteracoes
                (tabela, registro_id, funcionario_id, admin_nome,
                 campo_alterado, valor_anterior, valor_novo, motivo, created_at)
            VALUES
                (p_tabela, p_registro_id, p_funcionario_id, p_admin_nome,
                 p_campo_alterado, p_valor_anterior, p_valor_novo, p_motivo, now())
            RETURNING id;
        $$;
    `)

	db.Exec(`
        CREATE OR REPLACE FUNCTION obter_historico_registro(p_tabela text, p_registro_id uuid)
        RETURNS SETOF historico_alteracoes
        LANGUAGE sql
        SECURITY DEFINER
        AS $$
            SELECT *
            FROM historico_alteracoes
            WHERE tabela = p_tabela
              AND registro_id = p_registro_id
            ORDER BY created_at DESC;
        $$;
    `)
}

// seedAdmin garante o administrador inicial do painel quando as variáveis
// ADMIN_EMAIL/ADMIN_SENHA estão presentes.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminSenha == "" {
		return
	}

	var count int64
	db.Model(&models.Funcionario{}).
		Where("role = ? AND email = ?", "admin", cfg.AdminEmail).
		Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminSenha), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}

	admin := models.Funcionario{
		Nome:      cfg.AdminNome,
		Pin:       "0000",
		Role:      "admin",
		Ativo:     true,
		Email:     cfg.AdminEmail,
		SenhaHash: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin: %v", err)
	}
}
