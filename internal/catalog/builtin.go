package catalog

// builtin is the tool table, grouped by category. Order within a category
// is the order shown in listings and the interactive menu.
var builtin = []Tool{
	{
		ID:           "git",
		Name:         "Git",
		Category:     CategoryVCS,
		CheckCommand: "git",
		VersionArgs:  []string{"--version"},
		WingetID:     "Git.Git",
		ChocoID:      "git",
		ScoopID:      "git",
		Download: &Download{
			GitHubRepo:   "git-for-windows/git",
			AssetPattern: "Git-*-64-bit.exe",
			Kind:         InstallerEXE,
			SilentArgs:   []string{"/VERYSILENT", "/NORESTART"},
		},
		RegistryNames: []string{"Git"},
	},
	{
		ID:           "nodejs",
		Name:         "Node.js LTS",
		Category:     CategoryRuntimes,
		CheckCommand: "node",
		VersionArgs:  []string{"--version"},
		WingetID:     "OpenJS.NodeJS.LTS",
		ChocoID:      "nodejs-lts",
		ScoopID:      "nodejs-lts",
		Download: &Download{
			URL:        "https://nodejs.org/dist/v{version}/node-v{version}-{arch}.msi",
			Kind:       InstallerMSI,
			SilentArgs: []string{"/qn", "/norestart"},
		},
		RegistryNames: []string{"Node.js"},
	},
	{
		ID:           "python",
		Name:         "Python 3",
		Category:     CategoryRuntimes,
		CheckCommand: "python",
		VersionArgs:  []string{"--version"},
		WingetID:     "Python.Python.3.12",
		ChocoID:      "python",
		ScoopID:      "python",
		Download: &Download{
			URL:        "https://www.python.org/ftp/python/{version}/python-{version}-amd64.exe",
			Kind:       InstallerEXE,
			SilentArgs: []string{"/quiet", "InstallAllUsers=0", "PrependPath=1"},
		},
		RegistryNames: []string{"Python"},
	},
	{
		ID:           "postgresql",
		Name:         "PostgreSQL",
		Category:     CategoryDatabases,
		CheckCommand: "psql",
		VersionArgs:  []string{"--version"},
		WingetID:     "PostgreSQL.PostgreSQL.16",
		ChocoID:      "postgresql",
		ScoopID:      "postgresql",
		Download: &Download{
			URL:        "https://get.enterprisedb.com/postgresql/postgresql-{version}-windows-x64.exe",
			Kind:       InstallerEXE,
			SilentArgs: []string{"--mode", "unattended", "--unattendedmodeui", "none"},
		},
		RegistryNames:     []string{"PostgreSQL"},
		ServiceName:       "postgresql-x64-16",
		RequiresElevation: true,
	},
	{
		ID:       "xampp",
		Name:     "XAMPP",
		Category: CategoryDatabases,
		ChocoID:  "xampp-81",
		Download: &Download{
			URL:        "https://downloads.sourceforge.net/project/xampp/XAMPP%20Windows/{version}/xampp-windows-x64-{version}-0-VS16-installer.exe",
			Kind:       InstallerEXE,
			SilentArgs: []string{"--mode", "unattended"},
		},
		RegistryNames:     []string{"XAMPP"},
		Env:               map[string]string{"XAMPP_HOME": `C:\xampp`},
		RequiresElevation: true,
		Notes:             "Apache, MariaDB, and PHP in one bundle.",
	},
	{
		ID:           "gcloud",
		Name:         "Google Cloud CLI",
		Category:     CategoryCloud,
		CheckCommand: "gcloud",
		VersionArgs:  []string{"--version"},
		WingetID:     "Google.CloudSDK",
		ChocoID:      "gcloudsdk",
		ScoopID:      "gcloud",
		Download: &Download{
			URL:        "https://dl.google.com/dl/cloudsdk/channels/rapid/GoogleCloudSDKInstaller.exe",
			Kind:       InstallerEXE,
			SilentArgs: []string{"/S"},
		},
		RegistryNames: []string{"Google Cloud SDK", "Google Cloud CLI"},
	},
	{
		ID:           "firebase-cli",
		Name:         "Firebase CLI",
		Category:     CategoryCloud,
		CheckCommand: "firebase",
		VersionArgs:  []string{"--version"},
		ScoopID:      "firebase",
		Download: &Download{
			GitHubRepo:   "firebase/firebase-tools",
			AssetPattern: "firebase-tools-win.exe",
			Kind:         InstallerBin,
		},
	},
	{
		ID:           "awscli",
		Name:         "AWS CLI",
		Category:     CategoryCloud,
		CheckCommand: "aws",
		VersionArgs:  []string{"--version"},
		WingetID:     "Amazon.AWSCLI",
		ChocoID:      "awscli",
		ScoopID:      "aws",
		Download: &Download{
			URL:        "https://awscli.amazonaws.com/AWSCLIV2.msi",
			Kind:       InstallerMSI,
			SilentArgs: []string{"/qn", "/norestart"},
		},
		RegistryNames: []string{"AWS Command Line Interface"},
	},
	{
		ID:           "vscode",
		Name:         "Visual Studio Code",
		Category:     CategoryEditors,
		CheckCommand: "code",
		VersionArgs:  []string{"--version"},
		WingetID:     "Microsoft.VisualStudioCode",
		ChocoID:      "vscode",
		ScoopID:      "vscode",
		Download: &Download{
			URL:        "https://update.code.visualstudio.com/{version}/win32-x64-user/stable",
			Kind:       InstallerEXE,
			SilentArgs: []string{"/VERYSILENT", "/NORESTART", "/MERGETASKS=!runcode"},
		},
		RegistryNames: []string{"Microsoft Visual Studio Code"},
	},
	{
		ID:       "intellij-idea",
		Name:     "IntelliJ IDEA Community",
		Category: CategoryEditors,
		WingetID: "JetBrains.IntelliJIDEA.Community",
		ChocoID:  "intellijidea-community",
		ScoopID:  "idea",
		Download: &Download{
			URL:        "https://download.jetbrains.com/idea/ideaIC-{version}.exe",
			Kind:       InstallerEXE,
			SilentArgs: []string{"/S"},
		},
		RegistryNames: []string{"IntelliJ IDEA"},
	},
	{
		ID:       "chrome",
		Name:     "Google Chrome",
		Category: CategoryBrowsers,
		WingetID: "Google.Chrome",
		ChocoID:  "googlechrome",
		ScoopID:  "googlechrome",
		Download: &Download{
			URL:        "https://dl.google.com/dl/chrome/install/googlechromestandaloneenterprise64.msi",
			Kind:       InstallerMSI,
			SilentArgs: []string{"/qn", "/norestart"},
		},
		RegistryNames:     []string{"Google Chrome"},
		RequiresElevation: true,
	},
	{
		ID:       "firefox",
		Name:     "Mozilla Firefox",
		Category: CategoryBrowsers,
		WingetID: "Mozilla.Firefox",
		ChocoID:  "firefox",
		ScoopID:  "firefox",
		Download: &Download{
			URL:        "https://download.mozilla.org/?product=firefox-latest-ssl&os=win64&lang=en-US",
			Kind:       InstallerEXE,
			SilentArgs: []string{"-ms"},
		},
		RegistryNames: []string{"Mozilla Firefox"},
	},
	{
		ID:           "docker-desktop",
		Name:         "Docker Desktop",
		Category:     CategoryUtilities,
		CheckCommand: "docker",
		VersionArgs:  []string{"--version"},
		WingetID:     "Docker.DockerDesktop",
		ChocoID:      "docker-desktop",
		Download: &Download{
			URL:        "https://desktop.docker.com/win/main/amd64/Docker%20Desktop%20Installer.exe",
			Kind:       InstallerEXE,
			SilentArgs: []string{"install", "--quiet"},
		},
		RegistryNames:     []string{"Docker Desktop"},
		ServiceName:       "com.docker.service",
		RequiresElevation: true,
		Notes:             "Requires WSL 2 or Hyper-V.",
	},
	{
		ID:       "postman",
		Name:     "Postman",
		Category: CategoryUtilities,
		WingetID: "Postman.Postman",
		ChocoID:  "postman",
		ScoopID:  "postman",
		Download: &Download{
			URL:        "https://dl.pstmn.io/download/latest/win64",
			Kind:       InstallerEXE,
			SilentArgs: []string{"-s"},
		},
		RegistryNames: []string{"Postman"},
	},
	{
		ID:           "7zip",
		Name:         "7-Zip",
		Category:     CategoryUtilities,
		CheckCommand: "7z",
		WingetID:     "7zip.7zip",
		ChocoID:      "7zip",
		ScoopID:      "7zip",
		Download: &Download{
			URL:        "https://www.7-zip.org/a/7z{version}-x64.exe",
			Kind:       InstallerEXE,
			SilentArgs: []string{"/S"},
		},
		RegistryNames: []string{"7-Zip"},
	},
}
