package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/budgetflow/budgetflow/internal/inmemory"
	"github.com/budgetflow/budgetflow/internal/money"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "BUDGETFLOW_"

type Application struct {
	Server  Server  `koanf:"server"`
	Latency Latency `koanf:"latency"`
	Ids     Ids     `koanf:"ids"`
	Budget  Budget  `koanf:"budget"`
	Seed    Seed    `koanf:"seed"`
}

type Server struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"readtimeout"`
	WriteTimeout    time.Duration `koanf:"writetimeout"`
	IdleTimeout     time.Duration `koanf:"idletimeout"`
	ShutdownTimeout time.Duration `koanf:"shutdowntimeout"`
}

// Latency configures the simulated round trip of every repository operation.
type Latency struct {
	Enabled bool          `koanf:"enabled"`
	List    time.Duration `koanf:"list"`
	Get     time.Duration `koanf:"get"`
	Create  time.Duration `koanf:"create"`
	Update  time.Duration `koanf:"update"`
	Delete  time.Duration `koanf:"delete"`
	Query   time.Duration `koanf:"query"`
}

type Ids struct {
	Policy string `koanf:"policy"`
}

type Budget struct {
	// Income is a decimal string so that no precision is lost on the way in.
	Income string `koanf:"income"`
}

type Seed struct {
	// Dir optionally holds replacements for the embedded seed files.
	Dir string `koanf:"dir"`
}

func Defaults() Application {
	profile := inmemory.DefaultProfile()
	return Application{
		Server: Server{
			Addr:            ":8181",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Latency: Latency{
			Enabled: true,
			List:    profile[inmemory.OpList],
			Get:     profile[inmemory.OpGet],
			Create:  profile[inmemory.OpCreate],
			Update:  profile[inmemory.OpUpdate],
			Delete:  profile[inmemory.OpDelete],
			Query:   profile[inmemory.OpQuery],
		},
		Ids: Ids{
			Policy: string(inmemory.IdPolicyMonotonic),
		},
		Budget: Budget{
			Income: "4000",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if err := app.Validate(); err != nil {
		return Application{}, err
	}

	return app, nil
}

func (a Application) Validate() error {
	if _, err := a.Ids.IdPolicy(); err != nil {
		return err
	}
	if _, err := a.Budget.IncomeAmount(); err != nil {
		return err
	}
	return nil
}

// Profile returns the latency repositories should simulate. Disabled latency resolves immediately.
func (l Latency) Profile() inmemory.Latency {
	if !l.Enabled {
		return inmemory.NoLatency{}
	}
	return inmemory.Profile{
		inmemory.OpList:   l.List,
		inmemory.OpGet:    l.Get,
		inmemory.OpCreate: l.Create,
		inmemory.OpUpdate: l.Update,
		inmemory.OpDelete: l.Delete,
		inmemory.OpQuery:  l.Query,
	}
}

func (i Ids) IdPolicy() (inmemory.IdPolicy, error) {
	return inmemory.ParseIdPolicy(i.Policy)
}

// IncomeAmount parses the configured income. Formatted amounts such as "$4,000.00" are accepted.
func (b Budget) IncomeAmount() (decimal.Decimal, error) {
	income, err := money.ParseAmount(b.Income)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid budget income: %w", err)
	}
	return income, nil
}
