// Package roles defines the development team's role taxonomy: each role maps
// to an immutable system-message template and a one-line description through
// static lookup tables. The templates are the prompts handed to the external
// group-chat runtime — nothing here talks to a model.
package roles

import "fmt"

// Role identifies one specialized agent in the development team.
type Role string

const (
	RoleProductOwner    Role = "product_owner"
	RoleTechArchitect   Role = "tech_architect"
	RoleSeniorDeveloper Role = "senior_developer"
	RoleQAEngineer      Role = "qa_engineer"
	RoleDevOpsEngineer  Role = "devops_engineer"
	RoleScrumMaster     Role = "scrum_master"
)

// TerminationMarker is the token the Scrum Master emits when a sprint is
// done. The external runtime watches for it to stop the group chat.
const TerminationMarker = "SPRINT_COMPLETE!"

// All returns the roles in their canonical team order. The Scrum Master is
// last and is the conventional initial speaker for group chats.
func All() []Role {
	return []Role{
		RoleProductOwner,
		RoleTechArchitect,
		RoleSeniorDeveloper,
		RoleQAEngineer,
		RoleDevOpsEngineer,
		RoleScrumMaster,
	}
}

// Validate returns an error if the role is not recognized.
func Validate(r Role) error {
	if _, ok := systemMessages[r]; !ok {
		return fmt.Errorf("invalid role %q: must be one of: product_owner, tech_architect, senior_developer, qa_engineer, devops_engineer, scrum_master", r)
	}
	return nil
}

// SystemMessage returns the role's system-message template, or empty string
// for unknown roles.
func (r Role) SystemMessage() string {
	return systemMessages[r]
}

// Description returns the role's one-line description used for agent
// registration, or empty string for unknown roles.
func (r Role) Description() string {
	return descriptions[r]
}

// DefaultRoster maps each role to its default agent name. The status
// summary and exports carry this mapping; config may override the names.
func DefaultRoster() map[string]string {
	roster := make(map[string]string, len(systemMessages))
	for _, r := range All() {
		roster[string(r)] = string(r)
	}
	return roster
}

var descriptions = map[Role]string{
	RoleProductOwner:    "Defines requirements, prioritizes features, and ensures business value delivery",
	RoleTechArchitect:   "Designs system architecture and provides technical leadership",
	RoleSeniorDeveloper: "Implements features and provides technical expertise",
	RoleQAEngineer:      "Ensures quality through comprehensive testing and validation",
	RoleDevOpsEngineer:  "Manages deployment, infrastructure, and system reliability",
	RoleScrumMaster:     "Facilitates agile processes and removes team impediments",
}

var systemMessages = map[Role]string{
	RoleProductOwner: `You are an experienced Product Owner who:
- Defines clear, actionable user stories with acceptance criteria
- Prioritizes features based on business value and user impact
- Communicates requirements clearly to the development team
- Ensures deliverables meet stakeholder needs and quality standards
- Makes data-driven decisions about feature priorities
- Balances technical debt with new feature development`,

	RoleTechArchitect: `You are a Senior Technical Architect who:
- Designs scalable, maintainable, and robust system architectures
- Makes informed technology stack decisions based on requirements
- Defines coding standards, design patterns, and best practices
- Reviews architectural decisions for long-term viability and scalability
- Ensures security, performance, and maintainability considerations
- Provides technical guidance and mentorship to the team`,

	RoleSeniorDeveloper: `You are a Senior Software Developer who:
- Implements complex features and algorithms efficiently
- Writes clean, maintainable, and well-documented code
- Follows established coding standards and best practices
- Optimizes code for performance, security, and scalability
- Mentors other developers and shares knowledge
- Reviews code thoroughly and provides constructive feedback`,

	RoleQAEngineer: `You are a Quality Assurance Engineer who:
- Creates comprehensive test plans and detailed test cases
- Performs thorough manual and automated testing
- Identifies bugs, edge cases, and potential issues
- Ensures quality standards and acceptance criteria are met
- Validates performance, security, and usability requirements
- Provides clear bug reports and recommendations for improvement`,

	RoleDevOpsEngineer: `You are a DevOps Engineer who:
- Manages CI/CD pipelines and deployment automation
- Handles infrastructure provisioning and configuration
- Monitors system performance, reliability, and security
- Implements security best practices and compliance measures
- Optimizes deployment processes and system performance
- Ensures scalability and disaster recovery capabilities`,

	RoleScrumMaster: `You are an experienced Scrum Master who:
- Facilitates sprint planning, daily standups, and retrospectives
- Removes blockers and impediments to team productivity
- Ensures the team follows agile principles and best practices
- Coordinates team communication and collaboration
- Tracks progress and helps maintain sprint commitments
- Promotes continuous improvement and team efficiency

When a sprint is successfully completed, output: ` + TerminationMarker,
}
