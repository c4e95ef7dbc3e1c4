package constants

import "time"

// Exit codes.
const (
	ExitCodeSuccess = 0
	// Matches timeout(1) so reports read the same as a shell-wrapped run.
	ExitCodeTimeout         = 124
	ExitCodeCommandNotFound = 127
	ExitCodeUnknown         = -1
)

// Solver runtimes.
const (
	RuntimeLocal  = "local"
	RuntimeDocker = "docker"
)

// Configuration constants.
const (
	DefaultInputDir          = "wcnf"
	DefaultOutputDir         = "wmc"
	DefaultSolverPath        = "../addmc"
	DefaultSolverTimeout     = 1 * time.Second
	DefaultSolverRuntime     = RuntimeLocal
	DefaultSolverDockerImage = "debian:bookworm-slim"
	DefaultRabbitmqHost      = "localhost"
	DefaultRabbitmqUser      = "guest"
	DefaultRabbitmqPassword  = "guest"
	DefaultRabbitmqPort      = "5672"
	DefaultReportQueueName   = "wmc_reports"
	DefaultLogDir            = "logs"
	DefaultLogLevel          = "warn"
)

// Output directory permissions.
const (
	OutputDirPerm  = 0o755
	OutputFilePerm = 0o644
)

// Docker execution constants.
const (
	ContainerSolverDir      = "/opt/solver"
	ContainerNamePrefix     = "wmc-"
	ContainerCleanupTimeout = 10 * time.Second
	StdinDrainTimeout       = 2 * time.Second
)

// RabbitMQ specific constants.
const (
	RabbitMQReconnectTries   = 10
	QueueMessageTypeReport   = "report"
	ReportMessageContentType = "application/json"
)
