package permission

import "sync"

// Wildcard permissions grant every other permission.
// Only these two literal spellings are honored.
const (
	// Wildcard is the universal permission stored on the Super Admin role.
	Wildcard = "*"
	// WildcardScoped is the legacy spelling of Wildcard. It is honored by the
	// authorization gate but not part of the catalog.
	WildcardScoped = "*:*"
)

// Permission keys of the default catalog.
const (
	// StaffCreate allows adding employee records.
	StaffCreate = "staff:create"
	// StaffRead allows viewing employee records.
	StaffRead = "staff:read"
	// StaffUpdate allows editing employee records.
	StaffUpdate = "staff:update"
	// StaffDelete allows removing employee records.
	StaffDelete = "staff:delete"

	// UsersRead allows listing login accounts.
	UsersRead = "users:read"
	// UsersCreate allows creating login accounts.
	UsersCreate = "users:create"
	// UsersUpdate allows changing login accounts, including their role.
	UsersUpdate = "users:update"

	// RolesRead allows viewing a single role in detail.
	RolesRead = "roles:read"
	// RolesCreate allows defining new roles.
	RolesCreate = "roles:create"
	// RolesUpdate allows renaming roles and changing their permissions.
	RolesUpdate = "roles:update"
	// RolesDelete allows deleting unassigned roles.
	RolesDelete = "roles:delete"

	// DepartmentsRead allows viewing the department tree.
	DepartmentsRead = "departments:read"
	// DepartmentsManage allows creating, editing and removing departments.
	DepartmentsManage = "departments:manage"

	// LeaveRequest allows submitting leave requests.
	LeaveRequest = "leave.request"
	// LeaveView allows viewing leave requests of other employees.
	LeaveView = "leave.view"
	// LeaveApprove allows approving or rejecting leave requests.
	LeaveApprove = "leave.approve"

	// AttendanceView allows viewing attendance records.
	AttendanceView = "attendance.view"
	// AttendanceManage allows correcting attendance records.
	AttendanceManage = "attendance.manage"

	// PayrollRead allows viewing payslips and payroll runs.
	PayrollRead = "payroll:read"
	// PayrollProcess allows running and finalizing payroll.
	PayrollProcess = "payroll:process"

	// ScheduleRead allows viewing shift schedules.
	ScheduleRead = "schedule:read"
	// ScheduleManage allows publishing shift schedules.
	ScheduleManage = "schedule:manage"

	// AppraisalView allows viewing performance appraisals.
	AppraisalView = "appraisal.view"
	// AppraisalManage allows opening and closing appraisal cycles.
	AppraisalManage = "appraisal.manage"

	// ReportsView allows viewing HR reports.
	ReportsView = "reports:view"
	// ReportsExport allows exporting HR reports.
	ReportsExport = "reports:export"

	// AuditRead allows reading the audit trail.
	AuditRead = "audit:read"

	// SettingsManage allows changing application-wide settings.
	SettingsManage = "settings.manage"
)

// Category labels of the default catalog.
const (
	CategorySystem      = "System"
	CategoryStaff       = "Staff Management"
	CategoryUsers       = "User Management"
	CategoryRoles       = "Role Management"
	CategoryDepartments = "Department Management"
	CategoryLeave       = "Leave Management"
	CategoryAttendance  = "Attendance"
	CategoryPayroll     = "Payroll"
	CategoryScheduling  = "Scheduling"
	CategoryAppraisals  = "Appraisals"
	CategoryReports     = "Reports"
	CategoryAudit       = "Audit"
	CategorySettings    = "Settings"
)

var (
	defaultCatalog *Catalog //nolint:gochecknoglobals
	defaultOnce    sync.Once
)

// Default returns the built-in HR catalog. It is built on first use and shared afterwards.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustNew(defaultEntries()...)
	})

	return defaultCatalog
}

func defaultEntries() []Permission {
	return []Permission{
		{Key: Wildcard, Category: CategorySystem, Description: "Full access to every resource"},

		{Key: StaffCreate, Category: CategoryStaff, Description: "Create employee records"},
		{Key: StaffRead, Category: CategoryStaff, Description: "View employee records"},
		{Key: StaffUpdate, Category: CategoryStaff, Description: "Edit employee records"},
		{Key: StaffDelete, Category: CategoryStaff, Description: "Delete employee records"},

		{Key: UsersRead, Category: CategoryUsers, Description: "List user accounts"},
		{Key: UsersCreate, Category: CategoryUsers, Description: "Create user accounts"},
		{Key: UsersUpdate, Category: CategoryUsers, Description: "Edit user accounts and assign roles"},

		{Key: RolesRead, Category: CategoryRoles, Description: "View role details"},
		{Key: RolesCreate, Category: CategoryRoles, Description: "Create roles"},
		{Key: RolesUpdate, Category: CategoryRoles, Description: "Edit roles and their permissions"},
		{Key: RolesDelete, Category: CategoryRoles, Description: "Delete roles"},

		{Key: DepartmentsRead, Category: CategoryDepartments, Description: "View departments"},
		{Key: DepartmentsManage, Category: CategoryDepartments, Description: "Create, edit and delete departments"},

		{Key: LeaveRequest, Category: CategoryLeave, Description: "Submit leave requests"},
		{Key: LeaveView, Category: CategoryLeave, Description: "View leave requests of all employees"},
		{Key: LeaveApprove, Category: CategoryLeave, Description: "Approve or reject leave requests"},

		{Key: AttendanceView, Category: CategoryAttendance, Description: "View attendance records"},
		{Key: AttendanceManage, Category: CategoryAttendance, Description: "Correct attendance records"},

		{Key: PayrollRead, Category: CategoryPayroll, Description: "View payroll runs and payslips"},
		{Key: PayrollProcess, Category: CategoryPayroll, Description: "Run and finalize payroll"},

		{Key: ScheduleRead, Category: CategoryScheduling, Description: "View shift schedules"},
		{Key: ScheduleManage, Category: CategoryScheduling, Description: "Publish shift schedules"},

		{Key: AppraisalView, Category: CategoryAppraisals, Description: "View performance appraisals"},
		{Key: AppraisalManage, Category: CategoryAppraisals, Description: "Manage appraisal cycles"},

		{Key: ReportsView, Category: CategoryReports, Description: "View HR reports"},
		{Key: ReportsExport, Category: CategoryReports, Description: "Export HR reports"},

		{Key: AuditRead, Category: CategoryAudit, Description: "Read the audit trail"},

		{Key: SettingsManage, Category: CategorySettings, Description: "Change application settings"},
	}
}
