package app

import (
	"charm.land/lipgloss/v2"

	"daywise/internal/types"
)

var (
	headerStyle              = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activityStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	noteTitleStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	noteMetaStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	selectedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	dividerStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	menuDropStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	dialogHeaderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	sortDialogBorderStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69"))
	fieldLabelStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	toastInfoStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastErrorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)

// priorityColors is the display colour of each priority. The domain types know
// nothing about colour.
var priorityColors = map[types.Priority]string{
	types.PriorityHigh:   "203",
	types.PriorityMedium: "214",
	types.PriorityNormal: "114",
	types.PriorityLow:    "75",
}

const fallbackPriorityColor = "245"

func priorityColor(p types.Priority) string {
	if color, ok := priorityColors[p]; ok {
		return color
	}
	return fallbackPriorityColor
}

func priorityStyle(p types.Priority) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(priorityColor(p))).Bold(true)
}

func priorityBadge(p types.Priority) string {
	return priorityStyle(p).Render("● " + p.Name())
}
