package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pleimann/gesture-bridge/internal/utils"
)

type example struct {
	cmd  string
	desc string
}

// PrintUsage displays the styled help/usage text
func PrintUsage(version string) {
	exe := utils.ExecutableName()

	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(exe)

	versionTag := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
	fmt.Println(Muted("Touchpad gesture to pointer event bridge"))
	fmt.Println()

	printSection("Usage", []string{
		exe + " replay [flags] script.yaml     Convert a gesture script to motion events",
		exe + " ranges [flags]                 Show the advertised motion ranges",
		exe + " list-devices [-all]            List connected touchpads",
		exe + " set-device [args]              Configure the touchpad",
		exe + " set-orientation [degrees]      Set the display orientation",
		exe + " init                           Write a default config file",
		exe + " help                           Show this help message",
	})

	printSection("Flags", []string{
		"-config string    Path to configuration file (default \"config.yaml\")",
		"-verbose          Enable verbose logging",
		"-version          Print version and exit",
	})

	printCommandSection()

	printExamples([]example{
		{exe + " replay swipe.yaml", "Replay with default config.yaml"},
		{exe + " replay -png trace.png swipe.yaml", "Also draw the pointer paths"},
		{exe + " replay -watch -realtime swipe.yaml", "Replay in real time, reloading config"},
		{exe + " set-orientation 90", "Rotate deltas for a portrait display"},
		{exe + " set-device 0x05AC 0x0265", "Set touchpad by vendor/product ID"},
	})
}

func printSection(title string, items []string) {
	fmt.Println(Bold(title))
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
	fmt.Println()
}

func printCommandSection() {
	fmt.Println(Bold("Commands"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	fmt.Printf("  %s\n", cmdStyle.Render("replay"))
	fmt.Printf("      Feed a gesture script through the converter and print every event\n")
	fmt.Printf("      Run %s for more information\n", Code(utils.ExecutableName()+" replay --help"))
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("set-device"))
	fmt.Printf("      Set the touchpad in the config file\n")
	fmt.Printf("      Run %s for more information\n", Code(utils.ExecutableName()+" set-device --help"))
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("set-orientation"))
	fmt.Printf("      Set the display rotation in the config file\n")
	fmt.Println()
}

func printExamples(examples []example) {
	fmt.Println(Bold("Examples"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	maxLen := 0
	for _, ex := range examples {
		if len(ex.cmd) > maxLen {
			maxLen = len(ex.cmd)
		}
	}

	for _, ex := range examples {
		padding := strings.Repeat(" ", maxLen-len(ex.cmd)+2)
		fmt.Printf("  %s%s%s\n", cmdStyle.Render(ex.cmd), padding, Muted(ex.desc))
	}
	fmt.Println()
}

// PrintReplayUsage displays the styled help text for the replay subcommand
func PrintReplayUsage() {
	exe := utils.ExecutableName()
	fmt.Println(Bold("Usage:"), exe+" replay [options] script.yaml")
	fmt.Println()
	fmt.Println("Convert a gesture script to motion events.")
	fmt.Println()
	fmt.Println(Muted("Every event is printed and checked for down/up pairing."))
	fmt.Println(Muted("Open pointers are closed with a reset when the script ends."))
	fmt.Println()

	fmt.Println(Bold("Options"))
	fmt.Printf("  %s    Path to configuration file (default \"config.yaml\")\n", SubtitleStyle.Render("-config string"))
	fmt.Printf("  %s       Write a PNG trace of pointer paths\n", SubtitleStyle.Render("-png string"))
	fmt.Printf("  %s         Wait between steps according to at_ms\n", SubtitleStyle.Render("-realtime"))
	fmt.Printf("  %s            Apply config file changes while replaying\n", SubtitleStyle.Render("-watch"))
	fmt.Printf("  %s             Only print the summary\n", SubtitleStyle.Render("-quiet"))
	fmt.Printf("  %s          Enable verbose logging\n", SubtitleStyle.Render("-verbose"))
	fmt.Println()

	printExamples([]example{
		{exe + " replay swipe.yaml", "Print events"},
		{exe + " replay -png out.png swipe.yaml", "Print events and draw a trace"},
		{exe + " replay -config my.yaml swipe.yaml", "Use different config"},
	})
}

// PrintSetDeviceUsage displays the styled help text for set-device subcommand
func PrintSetDeviceUsage() {
	exe := utils.ExecutableName()
	fmt.Println(Bold("Usage:"), exe+" set-device [options] [vendor_id product_id]")
	fmt.Println()
	fmt.Println("Set the touchpad in the configuration file.")
	fmt.Println()
	fmt.Println(Muted("If vendor_id and product_id are provided, updates the config directly."))
	fmt.Println(Muted("Otherwise, displays a list of connected touchpads to choose from."))
	fmt.Println()

	fmt.Println(Bold("Arguments"))
	fmt.Printf("  %s    Device vendor ID (hex with 0x prefix or decimal)\n", SubtitleStyle.Render("vendor_id"))
	fmt.Printf("  %s   Device product ID (hex with 0x prefix or decimal)\n", SubtitleStyle.Render("product_id"))
	fmt.Println()

	fmt.Println(Bold("Options"))
	fmt.Printf("  %s    Path to configuration file (default \"config.yaml\")\n", SubtitleStyle.Render("-config string"))
	fmt.Println()

	printExamples([]example{
		{exe + " set-device", "Interactive selection"},
		{exe + " set-device 0x05AC 0x0265", "Direct specification"},
		{exe + " set-device -config my.yaml", "Use different config"},
	})
}

// PrintVersion displays the styled version information
func PrintVersion(version string) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(utils.ExecutableName())

	versionTag := lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
}

// PrintError displays a styled error message
func PrintError(message string) {
	fmt.Println(Error(message))
}

// PrintFatalError displays a styled fatal error message with context
func PrintFatalError(context, message string) {
	fmt.Println()
	fmt.Println(Error(context))
	fmt.Printf("  %s\n", Muted(message))
	fmt.Println()
}
