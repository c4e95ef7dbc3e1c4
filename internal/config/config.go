package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mini-maxit/wmc-batch/internal/logger"
	"github.com/mini-maxit/wmc-batch/pkg/constants"
)

type Config struct {
	InputDir          string
	OutputDir         string
	SolverPath        string
	SolverTimeout     time.Duration
	SolverRuntime     string
	SolverDockerImage string
	ReportFile        string
	PublishReport     bool
	RabbitMQURL       string
	ReportQueueName   string
}

func NewConfig() *Config {
	logger := logger.NewNamedLogger("config")

	_, err := os.Stat(".env")
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Fatalf("failed to stat .env file with error: %v", err)
		}
	} else {
		err = godotenv.Load(".env")
		if err != nil {
			logger.Fatalf("failed to load .env file with error: %v", err)
		}
	}

	inputDir, outputDir := directoriesConfig()
	solverPath, solverTimeout, solverRuntime, solverDockerImage := solverConfig()
	reportFile, publishReport, reportQueueName := reportConfig()
	rabbitmqURL := rabbitmqConfig()

	return &Config{
		InputDir:          inputDir,
		OutputDir:         outputDir,
		SolverPath:        solverPath,
		SolverTimeout:     solverTimeout,
		SolverRuntime:     solverRuntime,
		SolverDockerImage: solverDockerImage,
		ReportFile:        reportFile,
		PublishReport:     publishReport,
		RabbitMQURL:       rabbitmqURL,
		ReportQueueName:   reportQueueName,
	}
}

func directoriesConfig() (string, string) {
	logger := logger.NewNamedLogger("config")

	inputDir := os.Getenv("INPUT_DIR")
	if inputDir == "" {
		inputDir = constants.DefaultInputDir
		logger.Infof("INPUT_DIR is not set, using default value %s", constants.DefaultInputDir)
	}
	outputDir := os.Getenv("OUTPUT_DIR")
	if outputDir == "" {
		outputDir = constants.DefaultOutputDir
		logger.Infof("OUTPUT_DIR is not set, using default value %s", constants.DefaultOutputDir)
	}

	return inputDir, outputDir
}

func solverConfig() (string, time.Duration, string, string) {
	logger := logger.NewNamedLogger("config")

	solverPath := os.Getenv("SOLVER_PATH")
	if solverPath == "" {
		solverPath = constants.DefaultSolverPath
		logger.Infof("SOLVER_PATH is not set, using default value %s", constants.DefaultSolverPath)
	}

	solverTimeout := constants.DefaultSolverTimeout
	solverTimeoutStr := os.Getenv("SOLVER_TIMEOUT")
	if solverTimeoutStr == "" {
		logger.Infof("SOLVER_TIMEOUT is not set, using default value %s", constants.DefaultSolverTimeout)
	} else {
		var err error
		solverTimeout, err = time.ParseDuration(solverTimeoutStr)
		if err != nil {
			logger.Fatalf("failed to parse SOLVER_TIMEOUT with error: %v", err)
		}
		if solverTimeout <= 0 {
			logger.Fatalf("SOLVER_TIMEOUT must be positive, got %s", solverTimeout)
		}
	}

	solverRuntime := strings.ToLower(os.Getenv("SOLVER_RUNTIME"))
	switch solverRuntime {
	case "":
		solverRuntime = constants.DefaultSolverRuntime
		logger.Infof("SOLVER_RUNTIME is not set, using default value %s", constants.DefaultSolverRuntime)
	case constants.RuntimeLocal, constants.RuntimeDocker:
	default:
		logger.Fatalf("unsupported SOLVER_RUNTIME %q, expected %q or %q",
			solverRuntime, constants.RuntimeLocal, constants.RuntimeDocker)
	}

	solverDockerImage := os.Getenv("SOLVER_DOCKER_IMAGE")
	if solverDockerImage == "" {
		solverDockerImage = constants.DefaultSolverDockerImage
		if solverRuntime == constants.RuntimeDocker {
			logger.Infof("SOLVER_DOCKER_IMAGE is not set, using default value %s", constants.DefaultSolverDockerImage)
		}
	}

	return solverPath, solverTimeout, solverRuntime, solverDockerImage
}

func reportConfig() (string, bool, string) {
	logger := logger.NewNamedLogger("config")

	reportFile := os.Getenv("REPORT_FILE")

	var publishReport bool
	publishReportStr := os.Getenv("PUBLISH_REPORT")
	if publishReportStr != "" {
		var err error
		publishReport, err = strconv.ParseBool(publishReportStr)
		if err != nil {
			logger.Fatalf("failed to parse PUBLISH_REPORT with error: %v", err)
		}
	}

	reportQueueName := os.Getenv("REPORT_QUEUE_NAME")
	if reportQueueName == "" {
		reportQueueName = constants.DefaultReportQueueName
		if publishReport {
			logger.Infof("REPORT_QUEUE_NAME is not set, using default value %s", constants.DefaultReportQueueName)
		}
	}

	return reportFile, publishReport, reportQueueName
}

func rabbitmqConfig() string {
	logger := logger.NewNamedLogger("config")

	rabbitmqHost := os.Getenv("RABBITMQ_HOST")
	if rabbitmqHost == "" {
		rabbitmqHost = constants.DefaultRabbitmqHost
	}
	rabbitmqPortStr := os.Getenv("RABBITMQ_PORT")
	if rabbitmqPortStr == "" {
		rabbitmqPortStr = constants.DefaultRabbitmqPort
	}
	rabbitmqPort, err := strconv.ParseUint(rabbitmqPortStr, 10, 16)
	if err != nil {
		logger.Fatalf("failed to parse RABBITMQ_PORT with error: %v", err)
	}
	rabbitmqUser := os.Getenv("RABBITMQ_USER")
	if rabbitmqUser == "" {
		rabbitmqUser = constants.DefaultRabbitmqUser
	}
	rabbitmqPassword := os.Getenv("RABBITMQ_PASSWORD")
	if rabbitmqPassword == "" {
		rabbitmqPassword = constants.DefaultRabbitmqPassword
	}

	return fmt.Sprintf("amqp://%s:%s@%s:%d/", rabbitmqUser, rabbitmqPassword, rabbitmqHost, rabbitmqPort)
}
