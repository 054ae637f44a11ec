package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DeviceInfo contains information about a HID device for display
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
	Touchpad     bool
}

// formModel wraps a huh form in Bubble Tea for proper escape handling
type formModel struct {
	form    *huh.Form
	aborted bool
}

func (m formModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, tea.Quit
	}

	return m, cmd
}

func (m formModel) View() string {
	if m.form.State == huh.StateCompleted {
		return ""
	}
	return m.form.View()
}

// runForm runs a form and reports whether the user completed it
func runForm(form *huh.Form) (bool, error) {
	p := tea.NewProgram(formModel{form: form})
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	return !finalModel.(formModel).aborted, nil
}

// SelectDevice presents an interactive touchpad selection
func SelectDevice(devices []DeviceInfo) (*DeviceInfo, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("no devices to select from")
	}

	options := make([]huh.Option[int], len(devices))
	for i, d := range devices {
		label := fmt.Sprintf("%s  %s",
			DeviceIDStyle.Render(fmt.Sprintf("0x%04X:0x%04X", d.VendorID, d.ProductID)),
			DeviceName(d),
		)
		options[i] = huh.NewOption(label, i)
	}

	var selectedIndex int

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select Touchpad").
				Description("Choose the touchpad to configure (esc to cancel)").
				Options(options...).
				Value(&selectedIndex),
		),
	).WithTheme(customTheme()).WithShowHelp(false)

	completed, err := runForm(form)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, nil // User cancelled
	}

	return &devices[selectedIndex], nil
}

// SelectOrientation asks for the display orientation, starting at current.
// The second result is false when the user cancelled.
func SelectOrientation(current int) (int, bool, error) {
	selected := current
	options := []huh.Option[int]{
		huh.NewOption("0°    natural", 0),
		huh.NewOption("90°   rotated clockwise", 90),
		huh.NewOption("180°  upside down", 180),
		huh.NewOption("270°  rotated counter-clockwise", 270),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Display Orientation").
				Description("Rotation applied to touchpad deltas (esc to cancel)").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(customTheme()).WithShowHelp(false)

	completed, err := runForm(form)
	if err != nil {
		return 0, false, err
	}
	return selected, completed, nil
}

// DeviceName creates a readable name for the device
func DeviceName(d DeviceInfo) string {
	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}
	if d.Manufacturer != "" {
		name = d.Manufacturer + " " + name
	}
	return name
}

// PrintDeviceList displays a styled list of HID devices
func PrintDeviceList(devices []DeviceInfo, title string) {
	if len(devices) == 0 {
		fmt.Println(Warning("No " + strings.ToLower(title) + " found"))
		return
	}

	fmt.Println()
	fmt.Println(Title(title))
	fmt.Println(Muted(fmt.Sprintf("Found %d device(s)", len(devices))))
	fmt.Println()

	for _, d := range devices {
		fmt.Println(formatDevice(d))
	}
	fmt.Println()
}

func formatDevice(d DeviceInfo) string {
	idLine := DeviceIDStyle.Render(fmt.Sprintf("  0x%04X:0x%04X", d.VendorID, d.ProductID))

	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}

	var details []string
	details = append(details, DeviceNameStyle.Render(name))
	if d.Manufacturer != "" {
		details = append(details, DeviceManufacturerStyle.Render("by "+d.Manufacturer))
	}
	if d.Touchpad {
		details = append(details, SuccessStyle.Render("[touchpad]"))
	}

	return fmt.Sprintf("%s  %s", idLine, strings.Join(details, " "))
}

// PrintDeviceUpdated shows a success message after updating device config
func PrintDeviceUpdated(configPath string, vendorID, productID uint16, name string) {
	fmt.Println()
	fmt.Println(Success("Device configuration updated"))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Device:"), DeviceIDStyle.Render(fmt.Sprintf("0x%04X:0x%04X", vendorID, productID)))
	if name != "" {
		fmt.Printf("  %s %s\n", Muted("Name:"), DeviceNameStyle.Render(name))
	}
	fmt.Println()
}

// PrintOrientationUpdated shows a success message after changing the orientation
func PrintOrientationUpdated(configPath string, degrees int, created bool) {
	fmt.Println()
	if created {
		fmt.Println(Success("Configuration created"))
	} else {
		fmt.Println(Success("Orientation updated"))
	}
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Orientation:"), DeviceIDStyle.Render(fmt.Sprintf("%d°", degrees)))
	fmt.Println()
}

// customTheme returns a custom huh theme matching our style palette
func customTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(lipgloss.Color("#F9FAFB"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)

	return t
}
