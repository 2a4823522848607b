package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/snowbatch/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Initialize a new snowbatch project",
	Long: `Initialize a snowbatch project into the specified directory.

The init command creates:
- snowbatch.yaml with connection and table configuration
- .env.example for credentials
- data/ directory for the <table>.csv.gz archives
- README with usage instructions

Target directory must be empty or non-existent.

Examples:
  snowbatch init .                    # Initialize in current directory
  snowbatch init ./migration          # Initialize in ./migration
  snowbatch init /absolute/path       # Initialize at absolute path`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

var initTemplate string

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initTemplate, "template", "standard", "Template to use")
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	// Determine project name from target path
	projectName := filepath.Base(targetPath)
	if projectName == "." || projectName == ".." {
		cwd, err := os.Getwd()
		if err == nil {
			projectName = filepath.Base(cwd)
		} else {
			projectName = "project"
		}
	}
	verbose := getVerboseFlag(cmd)

	// Validate template
	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	validTemplate := false
	for _, t := range templates {
		if t == initTemplate {
			validTemplate = true
			break
		}
	}

	if !validTemplate {
		return fmt.Errorf("invalid template '%s'. Available templates: %v", initTemplate, templates)
	}

	scaffolder := scaffold.NewScaffolder(verbose)

	if err := scaffolder.CreateProject(projectName, initTemplate, targetPath); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	// Display file tree
	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		// Non-fatal - just skip tree display
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized successfully in '%s' using template '%s'\n\n", targetPath, initTemplate)
	} else {
		fmt.Fprintf(os.Stderr, "\n✓ Project initialized successfully using template '%s'\n\n", initTemplate)
		fmt.Fprintln(os.Stderr, "Created structure:")
		fmt.Fprint(os.Stderr, tree)
	}

	// Next steps
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetPath != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetPath)
	}
	fmt.Fprintln(os.Stderr, "  # Edit snowbatch.yaml, drop <table>.csv.gz files into data/, then:")
	fmt.Fprintln(os.Stderr, "  snowbatch plan")
	fmt.Fprintln(os.Stderr, "  snowbatch load")

	return nil
}
