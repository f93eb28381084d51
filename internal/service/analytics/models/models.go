package models

import "time"

// DefaultRangeDays глубина отчета, если начало диапазона не задано
const DefaultRangeDays = 30

// MaxRangeDays максимальная длина диапазона отчета
const MaxRangeDays = 366

// ReportRequest параметры отчета. Пустые границы берутся относительно текущей даты.
type ReportRequest struct {
	From *time.Time
	To   *time.Time
	City string
}

// Report сводка по бронированиям за период
type Report struct {
	From        string
	To          string
	City        string
	Total       int
	ByStatus    map[string]int
	ByExecution map[string]int
	ByKind      map[string]int
	ByCity      map[string]int
	ByPeriod    map[string]int
	Technicians []TechnicianLoad
	Load        LoadStats
}

// TechnicianLoad загрузка одного техника за период
type TechnicianLoad struct {
	TechnicianID   string
	TechnicianName string
	Bookings       int // бронирования, занимающие слот
	Completed      int
	Unfinished     int
	CompletionRate float64 // Completed / Bookings
	Capacity       int     // сумма слотов за все дни периода
	Utilisation    float64 // Bookings / Capacity
}

// LoadStats распределение загрузки между техниками
type LoadStats struct {
	Mean   float64
	StdDev float64
	Min    int
	Max    int
}
