package model

// 通用仓储的批量查询按ID索引结果，所有实体在这里暴露统一的ID访问器

func (c *AppraisalCycle) GetID() string      { return c.ID }
func (s *AppraisalSection) GetID() string    { return s.ID }
func (a *Appraisal) GetID() string           { return a.ID }
func (i *AppraisalInput) GetID() string      { return i.ID }
func (s *AppraisalSubmission) GetID() string { return s.ID }
func (g *DepartmentGroup) GetID() string     { return g.ID }
func (d *Department) GetID() string          { return d.ID }
func (s *Staff) GetID() string               { return s.ID }
func (u *User) GetID() string                { return u.ID }
