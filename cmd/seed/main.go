package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"talent-hub/internal/config"
	"talent-hub/internal/database/migration"
	dbpostgres "talent-hub/internal/database/postgres"
	"talent-hub/internal/database/seeder"
	"talent-hub/internal/domain/identity"
	"talent-hub/internal/pkg/jwt"
	"talent-hub/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	migrate := flag.Bool("migrate", true, "apply migrations before seeding")
	skipData := flag.Bool("skip-data", false, "only print the token")
	tokenEmail := flag.String("token-email", "", "print a dev access token for this email")
	tokenRole := flag.String("token-role", string(identity.RoleHR), "role for the dev token (hr, admin, job_seeker)")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "dev token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	log := logger.New(cfg.Log)

	if !*skipData {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.WithError(err).Fatal("failed to connect database")
		}
		defer func() { _ = db.Close() }()

		if *migrate {
			r := migration.Runner{Logger: log.WithField("component", "migration")}
			if err := r.Run(ctx, db.SQLDB()); err != nil {
				log.WithError(err).Fatal("migration failed")
			}
		}

		r := seeder.Runner{Seeders: seeder.Defaults(), Logger: log.WithField("component", "seeder")}
		if err := r.Run(ctx, db); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
	}

	if *tokenEmail == "" {
		return
	}
	role, ok := identity.ParseRole(*tokenRole)
	if !ok {
		log.WithField("role", *tokenRole).Fatal("unknown role")
	}
	who := identity.Identity{
		UserID: seeder.IdentityID(*tokenEmail),
		Email:  *tokenEmail,
		Role:   role,
	}
	token, err := jwt.NewHMACService(cfg.JWT.Secret, *tokenTTL).GenerateAccessToken(who)
	if err != nil {
		log.WithError(err).Fatal("failed to sign token")
	}
	fmt.Println(token)
}
