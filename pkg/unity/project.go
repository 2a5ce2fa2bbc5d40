package unity

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Project holds the identity of a Unity project, used to locate where its
// builds store persistent data
type Project struct {
	Path        string
	Name        string
	CompanyName string
	ProductName string
}

func LoadProject(projectPath string) (*Project, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	settingsFile := filepath.Join(absPath, "ProjectSettings", "ProjectSettings.asset")
	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("not a Unity project: ProjectSettings.asset not found at %s", settingsFile)
	}

	company, product, err := readPlayerIdentity(settingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read project settings: %w", err)
	}

	return &Project{
		Path:        absPath,
		Name:        filepath.Base(absPath),
		CompanyName: company,
		ProductName: product,
	}, nil
}

func readPlayerIdentity(settingsFile string) (string, string, error) {
	file, err := os.Open(settingsFile)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = file.Close() }()

	var company, product string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Format: "  companyName: DefaultCompany"
		if v, ok := strings.CutPrefix(line, "companyName:"); ok && company == "" {
			company = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "productName:"); ok && product == "" {
			product = strings.TrimSpace(v)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}

	if company == "" || product == "" {
		return "", "", fmt.Errorf("companyName or productName missing in %s", settingsFile)
	}
	return company, product, nil
}
